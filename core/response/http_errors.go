package response

import "net/http"

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates an error with status and code.
func NewHTTPError(status int, code, message string) HTTPError {
	return HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

func newStatusError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	ErrBadRequest            = newStatusError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized          = newStatusError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden             = newStatusError(http.StatusForbidden, "forbidden")
	ErrNotFound              = newStatusError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = newStatusError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict              = newStatusError(http.StatusConflict, "conflict")
	ErrRequestEntityTooLarge = newStatusError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnprocessableEntity   = newStatusError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests       = newStatusError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternalServerError   = newStatusError(http.StatusInternalServerError, "internal_server_error")
	ErrServiceUnavailable    = newStatusError(http.StatusServiceUnavailable, "service_unavailable")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrRequestEntityTooLarge,
	http.StatusUnprocessableEntity:   ErrUnprocessableEntity,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
}
