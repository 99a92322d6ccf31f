// Package generation holds the provider-neutral parts of AI content
// generation: the Provider boundary that LLM adapters implement, the prompt
// templates for each item kind, and the sanitizer and strict parsers that
// turn free-text provider output into domain items.
//
// Adapters for concrete services live under internal/platform (gemini,
// openrouter). The orchestration that combines a provider with the content
// store and the quota ledger lives in internal/service.
package generation
