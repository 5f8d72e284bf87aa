package errors

import "net/http"

// HTTPError is a client-facing error. Code is written to error_code in the
// response envelope and StatusCode becomes the HTTP status.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

// NewHTTPError defaults a zero statusCode to 400.
func NewHTTPError(code int, message string, statusCode int) *HTTPError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewUnauthorizedHTTPError() *HTTPError {
	return statusError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
}

func NewForbiddenHTTPError() *HTTPError {
	return statusError(http.StatusForbidden, http.StatusText(http.StatusForbidden))
}

// NewUnavailableHTTPError reports a down dependency or a stopped hub.
func NewUnavailableHTTPError(message string) *HTTPError {
	return statusError(http.StatusServiceUnavailable, message)
}

// statusError uses the HTTP status as the error code too.
func statusError(status int, message string) *HTTPError {
	return &HTTPError{Code: status, Message: message, StatusCode: status}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any HTTPError with the same code, so a rebuilt error such as
// NewForbiddenHTTPError() still satisfies errors.Is.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	return ok && t.Code == e.Code
}
