package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/authkit/pkg/clientip"
)

type clientIPContextKey struct{}

// ClientIPConfig configures the client IP middleware.
type ClientIPConfig struct {
	// TrustProxyHeaders reads CF-Connecting-IP, X-Forwarded-For and similar
	// headers. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// ClientIP stores the caller's address in the request context using only
// the connection address.
func ClientIP() func(http.Handler) http.Handler {
	return ClientIPWithConfig(ClientIPConfig{})
}

// ClientIPWithConfig stores the caller's address in the request context.
// Read it back with GetClientIP.
func ClientIPWithConfig(cfg ClientIPConfig) func(http.Handler) http.Handler {
	extract := clientip.RemoteIP
	if cfg.TrustProxyHeaders {
		extract = clientip.GetIP
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientIPContextKey{}, extract(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientIP returns the address stored by ClientIP.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok && ip != ""
}

func clientIPOf(r *http.Request) string {
	if ip, ok := GetClientIP(r.Context()); ok {
		return ip
	}
	return clientip.RemoteIP(r)
}
