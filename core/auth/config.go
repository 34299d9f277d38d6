package auth

// Config names the persistent identity cookies.
type Config struct {
	UserIDCookie   string `env:"AUTH_USER_ID_COOKIE" envDefault:"user_id"`
	RememberCookie string `env:"AUTH_REMEMBER_COOKIE" envDefault:"remember_token"`
}

// DefaultConfig returns the default cookie names.
func DefaultConfig() Config {
	return Config{
		UserIDCookie:   "user_id",
		RememberCookie: "remember_token",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.UserIDCookie == "" {
		c.UserIDCookie = d.UserIDCookie
	}
	if c.RememberCookie == "" {
		c.RememberCookie = d.RememberCookie
	}
	return c
}
