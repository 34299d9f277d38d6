package response

import (
	"errors"
	"net/http"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError. Errors that are neither an
// HTTPError nor carry a status code become a 500 whose message hides the cause.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}
	return baseErr
}

// Error writes err as a JSON error body: {"error": {...}}.
func Error(w http.ResponseWriter, err error) {
	httpErr := ToHTTPError(err)
	_ = JSON(w, httpErr.Status, map[string]HTTPError{"error": httpErr})
}
