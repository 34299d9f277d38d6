package auth

import "context"

type resolverKey struct{}

// WithResolver returns a copy of ctx carrying r.
func WithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// FromContext returns the Resolver stored by WithResolver.
func FromContext(ctx context.Context) (*Resolver, bool) {
	r, ok := ctx.Value(resolverKey{}).(*Resolver)
	return r, ok && r != nil
}
