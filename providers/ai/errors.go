package ai

import "fmt"

// Common error codes reported by providers. Codes classify the failure so the
// retry middleware can decide whether another attempt is worthwhile.
const (
	ErrInvalidInput      = "InvalidInput"
	ErrAuthentication    = "Authentication"
	ErrRateLimitExceeded = "RateLimitExceeded"
	ErrModelNotAvailable = "ModelNotAvailable"
	ErrContextCanceled   = "ContextCanceled"
	ErrAPIError          = "APIError"
	ErrInternal          = "Internal"
)

// ProviderError represents errors that occur during provider operations.
type ProviderError struct {
	Provider   string // provider name, e.g. "openai", "bedrock"
	Op         string // operation that failed, e.g. "SendMessage"
	Code       string // one of the Err* codes above
	Message    string
	StatusCode int // HTTP status code when the backend reported one, else 0
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %s: %v", e.Provider, e.Op, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s: %s", e.Provider, e.Op, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient. Rate limits and server
// side errors qualify; authentication and bad-request failures do not.
func (e *ProviderError) Retryable() bool {
	if e.Code == ErrRateLimitExceeded {
		return true
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}
