// Package auth decides who is making a request.
//
// Identity lives in two tiers. The session tier is a user id held in the
// server-side session and dies with the browser session. The persistent tier
// is a pair of permanent cookies: the user id sealed with authenticated
// encryption, and a random remember token whose bcrypt hash is stored on the
// user record.
//
// An Authenticator is built once per process. For every request it hands out
// a Resolver bound to that request's session and cookies:
//
//	authn, _ := auth.New(users, hasher, auth.WithLogger(log))
//
//	res := authn.NewResolver(&sess, auth.NewHTTPCookieJar(w, r, cookies, auth.DefaultConfig()))
//	u, err := res.CurrentUser(ctx)
//
// CurrentUser checks the session first. Without a session user it falls back
// to the cookie pair, verifies the token against the stored hash and, on
// success, logs the user into the session. Anything missing, tampered or
// mismatched resolves to an anonymous caller (nil user, nil error). Only
// repository failures surface as errors.
//
// The result is memoised on the Resolver, so repeated calls within a request
// agree with each other and hit the repository once.
//
// Login, remember-me and logout go through the same Resolver:
//
//	u, err := authn.Authenticate(ctx, email, password) // ErrInvalidCredentials on any mismatch
//	_ = res.LogIn(u)
//	_ = res.Remember(ctx, u) // or res.Forget(ctx, u)
//	_ = res.LogOut(ctx)      // forgets the current user and resets the session
package auth
