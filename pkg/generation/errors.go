package generation

import (
	"errors"
	"fmt"
	"net"

	"github.com/openai/openai-go"
)

// CodeNotFound marks a failed host name resolution.
const CodeNotFound = "ENOTFOUND"

// BackendError is returned when both call shapes failed.
type BackendError struct {
	// HTTP status of the last failure, 0 when the request never got a response
	Status int
	Code   string

	Primary  error
	Fallback error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generation backend unavailable (status=%d code=%q): primary: %v; fallback: %v",
		e.Status, e.Code, e.Primary, e.Fallback)
}

func (e *BackendError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}

func newBackendError(primary, fallback error) *BackendError {
	status, code := describe(fallback)
	if status == 0 && code == "" {
		status, code = describe(primary)
	}
	return &BackendError{
		Status:   status,
		Code:     code,
		Primary:  primary,
		Fallback: fallback,
	}
}

func describe(err error) (int, string) {
	if err == nil {
		return 0, ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return 0, CodeNotFound
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, apiErr.Code
	}

	return 0, ""
}
