package providers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies a registry failure independently of the transport.
type ErrorCategory string

const (
	ErrorTimeout          ErrorCategory = "timeout"
	ErrorProviderOutage   ErrorCategory = "provider_outage"
	ErrorRateLimited      ErrorCategory = "rate_limited"
	ErrorContractMismatch ErrorCategory = "contract_mismatch" // search form moved or changed
	ErrorBadData          ErrorCategory = "bad_data"          // page could not be read
	ErrorInternal         ErrorCategory = "internal"
)

// transient categories are worth another attempt.
var transient = map[ErrorCategory]bool{
	ErrorTimeout:        true,
	ErrorProviderOutage: true,
	ErrorRateLimited:    true,
}

// ProviderError is what every registry call fails with. The operator sees its
// message; callers branch on Category and Retryable.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	// StatusCode is the HTTP status when the registry answered, else 0.
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "registry %s: %s (%s", e.ProviderID, e.Message, e.Category)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ", status %d", e.StatusCode)
	}
	b.WriteString(")")
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a ProviderError; Retryable follows the category.
func NewProviderError(category ErrorCategory, providerID, message string, err error) *ProviderError {
	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Retryable:  transient[category],
		Err:        err,
	}
}

// IsRetryable reports whether err carries a retryable ProviderError.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}

// GetCategory returns the category of the ProviderError in err's chain, or
// ErrorInternal when there is none.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return ErrorInternal
	}
	return pe.Category
}
