package user_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/user"
)

func validParams() user.RegisterParams {
	return user.RegisterParams{
		Name:     "Example User",
		Email:    "user@example.com",
		Password: "foobar",
	}
}

func TestRegisterParams_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validParams().Validate())

	tests := []struct {
		name  string
		edit  func(p *user.RegisterParams)
		field string
	}{
		{"blank name", func(p *user.RegisterParams) { p.Name = "     " }, "name"},
		{"long name", func(p *user.RegisterParams) { p.Name = strings.Repeat("a", 51) }, "name"},
		{"blank email", func(p *user.RegisterParams) { p.Email = "   " }, "email"},
		{"long email", func(p *user.RegisterParams) { p.Email = strings.Repeat("a", 244) + "@example.com" }, "email"},
		{"blank password", func(p *user.RegisterParams) { p.Password = "      " }, "password"},
		{"short password", func(p *user.RegisterParams) { p.Password = "a1234" }, "password"},
		{"password over bcrypt limit", func(p *user.RegisterParams) { p.Password = strings.Repeat("a", 73) }, "password"},
		{"confirmation mismatch", func(p *user.RegisterParams) { p.PasswordConfirmation = "barfoo" }, "password_confirmation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validParams()
			tt.edit(&p)

			err := p.Validate()
			var verr *user.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.True(t, verr.Has(tt.field), verr.Error())
		})
	}
}

func TestRegisterParams_ValidateEmailFormat(t *testing.T) {
	t.Parallel()

	valid := []string{"user@example.com", "USER@foo.COM", "A_US-ER@foo.bar.org", "first.last@foo.jp", "alice+bob@baz.cn"}
	for _, email := range valid {
		p := validParams()
		p.Email = email
		assert.NoError(t, p.Validate(), email)
	}

	invalid := []string{"user@example,com", "user_at_foo.org", "user.name@example.", "foo@bar_baz.com", "foo@bar+baz.com"}
	for _, email := range invalid {
		p := validParams()
		p.Email = email
		var verr *user.ValidationError
		require.ErrorAs(t, p.Validate(), &verr, email)
		assert.True(t, verr.Has("email"), email)
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "foo@example.com", user.NormalizeEmail("  Foo@ExAMPle.CoM "))
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	err := user.RegisterParams{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email can't be blank")
	assert.Contains(t, err.Error(), "name can't be blank")
}
