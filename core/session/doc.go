// Package session tracks which user, if any, is logged in for one browser
// session.
//
// A Session is identified by a stable ID and presented by the browser as an
// opaque random Token. The token rotates whenever the logged-in user changes,
// so a token captured before login is useless afterwards. Sessions live in a
// Store (MemoryStore here, Redis in integration/database/redis) and expire
// after an idle TTL that is extended at most once per touch interval.
//
//	mgr := session.NewManager(session.NewMemoryStore(),
//		session.WithTTL(24*time.Hour),
//		session.WithTouchInterval(5*time.Minute),
//	)
//
//	sess, err := mgr.Load(ctx, tokenFromCookie) // anonymous if missing or expired
//	if err := sess.LogIn(userID); err != nil { ... }
//	if err := mgr.Store(ctx, &sess); err != nil { ... }
//
//	sess.Reset() // logout: next Store deletes it
//
// The HTTP binding lives in core/sessiontransport.
package session
