package generation

import "context"

// Provider is the boundary to an external text-generation service.
// Implementations are stateless and safe for concurrent use. They wrap
// their failures in ErrProviderFailure (or ErrProviderRateLimited) and
// report withheld or empty output as ErrMalformedResponse.
type Provider interface {
	// Complete sends prompt to the service and returns the raw text reply.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs.
	Name() string
}
