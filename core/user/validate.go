package user

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MaxNameLength     = 50
	MaxEmailLength    = 255
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`(?i)\A[\w+\-.]+@[a-z\d\-.]+\.[a-z]+\z`)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	// A Caser is stateful, so one is made per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// RegisterParams is the input to Service.Register.
type RegisterParams struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Validate checks p and returns a *ValidationError listing every problem.
// Email format is checked on the normalized address.
func (p RegisterParams) Validate() error {
	verr := &ValidationError{}

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		verr.add("name", "can't be blank")
	case utf8.RuneCountInString(name) > MaxNameLength:
		verr.add("name", "is too long (maximum is 50 characters)")
	}

	email := NormalizeEmail(p.Email)
	switch {
	case email == "":
		verr.add("email", "can't be blank")
	case utf8.RuneCountInString(email) > MaxEmailLength:
		verr.add("email", "is too long (maximum is 255 characters)")
	case !emailPattern.MatchString(email):
		verr.add("email", "is invalid")
	}

	switch {
	case strings.TrimSpace(p.Password) == "":
		verr.add("password", "can't be blank")
	case utf8.RuneCountInString(p.Password) < MinPasswordLength:
		verr.add("password", "is too short (minimum is 6 characters)")
	case len(p.Password) > MaxPasswordBytes:
		verr.add("password", "is too long (maximum is 72 bytes)")
	}
	if p.PasswordConfirmation != "" && p.PasswordConfirmation != p.Password {
		verr.add("password_confirmation", "doesn't match password")
	}

	return verr.orNil()
}
