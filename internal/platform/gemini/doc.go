// Package gemini implements generation.Provider on top of Google's Gemini
// API through the google.golang.org/genai client.
//
// The adapter is deliberately thin: it sends the prompt as a single text
// turn, concatenates the text parts of the first candidate and classifies
// failures into the generation error taxonomy. It does not retry; the
// caller owns the timeout and the fallback policy.
package gemini
