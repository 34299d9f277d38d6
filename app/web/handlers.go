package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/core/auth"
	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/response"
	"github.com/dmitrymomot/authkit/core/user"
)

const maxFormBytes = 64 << 10

var (
	errInvalidLogin  = response.ErrUnprocessableEntity.WithMessage("Invalid email/password combination")
	errInvalidSignup = response.ErrUnprocessableEntity.WithMessage("Validation failed")
)

// userView is the public representation of a user.
type userView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *user.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (a *App) signup(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		response.Error(w, response.ErrBadRequest)
		return
	}

	u, err := a.registrar.Register(r.Context(), user.RegisterParams{
		Name:                 r.PostFormValue("name"),
		Email:                r.PostFormValue("email"),
		Password:             r.PostFormValue("password"),
		PasswordConfirmation: r.PostFormValue("password_confirmation"),
	})
	if err != nil {
		var verr *user.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error(w, errInvalidSignup.WithDetails(fieldDetails(verr.Fields)))
		case errors.Is(err, user.ErrEmailTaken):
			response.Error(w, errInvalidSignup.WithDetails(map[string]any{
				"email": []string{"has already been taken"},
			}))
		default:
			a.internalError(w, r, "signup failed", err)
		}
		return
	}

	res := resolver(r)
	if err := res.LogIn(u); err != nil {
		a.internalError(w, r, "login after signup failed", err)
		return
	}

	_ = response.JSON(w, http.StatusCreated, newUserView(u))
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		response.Error(w, response.ErrBadRequest)
		return
	}

	u, err := a.authn.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Error(w, errInvalidLogin)
			return
		}
		a.internalError(w, r, "authenticate failed", err)
		return
	}

	res := resolver(r)
	if err := res.LogIn(u); err != nil {
		a.internalError(w, r, "login failed", err)
		return
	}

	if r.PostFormValue("remember_me") == "1" {
		err = res.Remember(r.Context(), u)
	} else {
		err = res.Forget(r.Context(), u)
	}
	if err != nil {
		a.internalError(w, r, "remember preference failed", err)
		return
	}

	_ = response.JSON(w, http.StatusOK, newUserView(u))
}

// logout is idempotent: an anonymous caller gets the same 204.
func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if err := resolver(r).LogOut(r.Context()); err != nil {
		a.internalError(w, r, "logout failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) me(w http.ResponseWriter, r *http.Request) {
	u, err := resolver(r).CurrentUser(r.Context())
	if err != nil {
		a.internalError(w, r, "resolve user failed", err)
		return
	}
	if u == nil {
		response.Error(w, response.ErrUnauthorized)
		return
	}
	_ = response.JSON(w, http.StatusOK, newUserView(u))
}

func (a *App) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	a.log.ErrorContext(r.Context(), msg, logger.Component("web"), logger.Error(err))
	response.Error(w, response.ErrInternalServerError)
}

// resolver returns the request's auth.Resolver. Routes using it are mounted
// behind middleware.Auth, so a missing resolver is a wiring bug.
func resolver(r *http.Request) *auth.Resolver {
	res, ok := auth.FromContext(r.Context())
	if !ok {
		panic("web: auth middleware not installed")
	}
	return res
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.ParseForm()
}

func fieldDetails(fields map[string][]string) map[string]any {
	details := make(map[string]any, len(fields))
	for field, msgs := range fields {
		details[field] = msgs
	}
	return details
}
