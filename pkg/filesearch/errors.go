package filesearch

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var (
	ErrNotInitialized     = errors.New("file search client not initialized")
	ErrMissingStoreName   = errors.New("failed to create store: name is missing")
	ErrOperationTimeout   = errors.New("upload operation did not finish in time")
	ErrOperationFailed    = errors.New("upload operation failed")
	ErrUnrecognizedFormat = errors.New("unrecognized example questions format")
)

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("file search api error, code %d, body %s", e.StatusCode, e.Body)
}

// providerError turns SDK status errors into *APIError so callers never
// depend on genai types. Other errors pass through unchanged.
func providerError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	return err
}
