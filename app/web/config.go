package web

import (
	"time"

	"github.com/dmitrymomot/authkit/core/auth"
	"github.com/dmitrymomot/authkit/core/cookie"
	"github.com/dmitrymomot/authkit/core/credential"
	"github.com/dmitrymomot/authkit/core/server"
	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/sessiontransport"
	"github.com/dmitrymomot/authkit/integration/database/pg"
	"github.com/dmitrymomot/authkit/integration/database/redis"
	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
)

// Backend names accepted by Config.UserStore and Config.SessionStore.
const (
	StoreMemory   = "memory"
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config composes the settings of every component the app wires together.
type Config struct {
	Cookie        cookie.Config
	Session       session.Config
	SessionCookie sessiontransport.CookieConfig
	Identity      auth.Config
	Credential    credential.Config
	Server        server.Config
	DB            pg.Config
	Redis         redis.Config

	AppName  string `env:"APP_NAME" envDefault:"authkit"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// UserStore is one of memory, bolt, postgres.
	UserStore string `env:"USER_STORE" envDefault:"memory"`
	BoltPath  string `env:"BOLT_PATH" envDefault:"authkit.db"`
	// AutoMigrate applies embedded migrations on start when UserStore is postgres.
	AutoMigrate bool `env:"DB_AUTO_MIGRATE" envDefault:"false"`

	// SessionStore is one of memory, redis. Redis also backs the login
	// rate limiter so limits hold across instances.
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	// AuthRateLimit throttles POST /login and POST /signup per client IP.
	AuthRateLimit ratelimiter.Config `envPrefix:"AUTH_RATE_LIMIT_"`
	// TrustProxyHeaders takes the client IP from X-Forwarded-For and similar
	// headers instead of the connection address.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// DefaultConfig returns a Config matching the envDefault values, except that
// Cookie.Secrets is left empty and must be set.
func DefaultConfig() Config {
	return Config{
		Cookie:        cookie.DefaultConfig(),
		Session:       session.Config{TTL: 24 * time.Hour, TouchInterval: 5 * time.Minute},
		SessionCookie: sessiontransport.DefaultCookieConfig(),
		Identity:      auth.DefaultConfig(),
		Credential:    credential.DefaultConfig(),
		Server:        server.DefaultConfig(),
		AppName:       "authkit",
		Env:           "development",
		LogLevel:      "info",
		UserStore:     StoreMemory,
		BoltPath:      "authkit.db",
		SessionStore:  StoreMemory,
		AuthRateLimit: ratelimiter.Config{Capacity: 10, RefillRate: 1, RefillInterval: time.Minute},
	}
}
