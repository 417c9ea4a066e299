package registrar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDomainList is returned when a check is asked for zero domains.
var ErrEmptyDomainList = errors.New("empty domain list")

// ProviderError is one error entry from the registrar API response.
type ProviderError struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

// RegistrarError wraps a failed outbound call. Transport failures carry
// the underlying error; protocol failures carry the HTTP status code and
// the provider's error entries verbatim.
type RegistrarError struct {
	Op         string
	StatusCode int
	Errors     []ProviderError
	Err        error
}

func (e *RegistrarError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registrar %s: %v", e.Op, e.Err)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, pe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("[%s] %s", pe.Number, pe.Message))
	}
	return fmt.Sprintf("registrar %s: provider error (status %d): %s", e.Op, e.StatusCode, strings.Join(msgs, "; "))
}

func (e *RegistrarError) Unwrap() error { return e.Err }

// Transport reports whether the failure happened before a parseable
// provider response (network error, timeout, bad payload).
func (e *RegistrarError) Transport() bool { return e.Err != nil }

func transportErr(op string, err error) *RegistrarError {
	return &RegistrarError{Op: op, Err: err}
}

func protocolErr(op string, status int, provider []ProviderError) *RegistrarError {
	return &RegistrarError{Op: op, StatusCode: status, Errors: provider}
}
