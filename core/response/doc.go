// Package response writes JSON responses and structured JSON errors for
// net/http handlers.
//
//	response.JSON(w, http.StatusOK, payload)
//	response.Error(w, response.ErrUnauthorized)
//	response.Error(w, response.ErrUnprocessableEntity.WithMessage("Invalid email/password combination"))
//
// Error maps any error to an HTTPError. Errors that are not an HTTPError and
// do not implement StatusCode() become a generic 500 so internal messages are
// never sent to clients.
package response
