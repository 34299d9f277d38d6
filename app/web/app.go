package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/authkit/core/auth"
	"github.com/dmitrymomot/authkit/core/cookie"
	"github.com/dmitrymomot/authkit/core/credential"
	"github.com/dmitrymomot/authkit/core/health"
	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/server"
	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/sessiontransport"
	"github.com/dmitrymomot/authkit/core/user"
	"github.com/dmitrymomot/authkit/integration/database/pg"
	"github.com/dmitrymomot/authkit/integration/database/redis"
	"github.com/dmitrymomot/authkit/middleware"
	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
)

const sessionCleanupInterval = 10 * time.Minute

// App wires storage, session handling and authentication into an HTTP API.
type App struct {
	cfg Config
	log *slog.Logger

	users     user.Repository
	hasher    *credential.Hasher
	cookies   *cookie.Manager
	store     session.Store
	sessions  *session.Manager
	transport *sessiontransport.Cookie
	registrar *user.Service
	authn     *auth.Authenticator
	limiter   *ratelimiter.Bucket
	server    *server.Server
	handler   http.Handler

	redisLimits *redis.RateLimitStore
	background  []func(context.Context) func() error
	checks      []func(context.Context) error
	closers     []func() error
}

// Option overrides a dependency New would otherwise build from Config.
type Option func(*App) error

func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l == nil {
			return fmt.Errorf("%w: logger", ErrNilDependency)
		}
		a.log = l
		return nil
	}
}

func WithUserRepository(repo user.Repository) Option {
	return func(a *App) error {
		if repo == nil {
			return fmt.Errorf("%w: user repository", ErrNilDependency)
		}
		a.users = repo
		return nil
	}
}

func WithSessionStore(store session.Store) Option {
	return func(a *App) error {
		if store == nil {
			return fmt.Errorf("%w: session store", ErrNilDependency)
		}
		a.store = store
		return nil
	}
}

func WithHasher(h *credential.Hasher) Option {
	return func(a *App) error {
		if h == nil {
			return fmt.Errorf("%w: hasher", ErrNilDependency)
		}
		a.hasher = h
		return nil
	}
}

func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) error {
		if m == nil {
			return fmt.Errorf("%w: cookie manager", ErrNilDependency)
		}
		a.cookies = m
		return nil
	}
}

// New builds the application. Backends not supplied through options are
// created from cfg, which may open database connections; call Close to
// release them.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.NewFromEnv(cfg.Env, cfg.AppName, logger.WithLevel(parseLevel(cfg.LogLevel)),
			logger.WithContextExtractors(middleware.RequestIDExtractor)),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	if a.hasher == nil {
		h, err := credential.New(a.cfg.Credential)
		if err != nil {
			return err
		}
		a.hasher = h
	}

	if a.cookies == nil {
		cm, err := cookie.NewFromConfig(a.cfg.Cookie)
		if err != nil {
			return err
		}
		a.cookies = cm
	}

	if a.users == nil {
		if err := a.openUserStore(ctx); err != nil {
			return err
		}
	}

	if a.store == nil {
		if err := a.openSessionStore(ctx); err != nil {
			return err
		}
	}

	limiter, err := ratelimiter.NewBucket(a.rateLimitStore(), a.cfg.AuthRateLimit)
	if err != nil {
		return err
	}
	a.limiter = limiter

	a.sessions = session.NewFromConfig(a.cfg.Session, a.store)
	a.transport = sessiontransport.NewCookieFromConfig(a.cfg.SessionCookie, a.sessions, a.cookies)

	registrar, err := user.NewService(a.users, a.hasher, user.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.registrar = registrar

	authn, err := auth.New(a.users, a.hasher, auth.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.authn = authn

	srv, err := server.NewFromConfig(a.cfg.Server, server.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.server = srv

	a.handler = a.routes()
	return nil
}

func (a *App) openUserStore(ctx context.Context) error {
	switch a.cfg.UserStore {
	case "", StoreMemory:
		a.users = user.NewMemoryRepository()
	case StoreBolt:
		repo, err := user.OpenBoltRepository(a.cfg.BoltPath)
		if err != nil {
			return err
		}
		a.users = repo
		a.closers = append(a.closers, repo.Close)
	case StorePostgres:
		pool, err := pg.Connect(ctx, a.cfg.DB)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		if a.cfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, user.Migrations, a.cfg.DB, a.log); err != nil {
				return err
			}
		}
		a.users = user.NewPostgresRepository(pool)
		a.checks = append(a.checks, pg.Healthcheck(pool))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUserStore, a.cfg.UserStore)
	}
	return nil
}

func (a *App) openSessionStore(ctx context.Context) error {
	switch a.cfg.SessionStore {
	case "", StoreMemory:
		a.store = session.NewMemoryStore()
	case StoreRedis:
		client, err := redis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		a.store = redis.NewSessionStore(client, a.cfg.Redis.KeyPrefix)
		a.redisLimits = redis.NewRateLimitStore(client, a.cfg.Redis.KeyPrefix)
		a.checks = append(a.checks, redis.Healthcheck(client))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, a.cfg.SessionStore)
	}
	return nil
}

func (a *App) rateLimitStore() ratelimiter.Store {
	if a.redisLimits != nil {
		return a.redisLimits
	}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(a.log))
	a.background = append(a.background, store.Run)
	return store
}

func (a *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.ClientIPWithConfig(middleware.ClientIPConfig{TrustProxyHeaders: a.cfg.TrustProxyHeaders}),
		middleware.LoggingWithLogger(a.log),
		middleware.SecurityHeaders(),
	)

	r.Get("/live", health.Liveness)
	r.Get("/health", health.Readiness(a.log, a.checks...))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(middleware.AuthConfig{
			Authenticator: a.authn,
			Sessions:      a.transport,
			Cookies:       a.cookies,
			Identity:      a.cfg.Identity,
			Logger:        a.log,
		}))

		throttle := middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:    a.limiter,
			SetHeaders: true,
			Logger:     a.log,
		})
		r.With(throttle).Post("/signup", a.signup)
		r.With(throttle).Post("/login", a.login)
		r.Delete("/logout", a.logout)

		r.With(middleware.RequireAuth()).Get("/me", a.me)
	})

	return r
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.log
}

// Run serves HTTP and periodically purges expired sessions until ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(a.server.Run(ctx, a.handler))
	eg.Go(func() error {
		a.cleanupSessions(ctx, sessionCleanupInterval)
		return nil
	})
	for _, run := range a.background {
		eg.Go(run(ctx))
	}
	return eg.Wait()
}

func (a *App) cleanupSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.sessions.CleanupExpired(ctx)
			if err != nil {
				a.log.ErrorContext(ctx, "session cleanup failed",
					logger.Component("session"), logger.Error(err))
				continue
			}
			if n > 0 {
				a.log.DebugContext(ctx, "expired sessions removed",
					logger.Component("session"), slog.Int64("count", n))
			}
		}
	}
}

// Close releases every backend connection New opened.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
