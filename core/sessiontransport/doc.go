// Package sessiontransport carries a session token between the browser and a
// session.Manager using a signed cookie.
//
// The cookie holds only Session.Token, signed with cookie.Manager so that a
// client cannot mint arbitrary tokens. It has no Max-Age: the browser drops
// it when it closes, while the server side enforces the idle TTL.
//
//	store := session.NewMemoryStore()
//	mgr := session.NewManager(store)
//	cookies, _ := cookie.New([]string{secret})
//	transport := sessiontransport.NewCookie(mgr, cookies, "_authkit_session")
//
//	sess, err := transport.Load(r)       // anonymous if missing or invalid
//	_ = sess.LogIn(userID)
//	err = transport.Save(w, r, &sess)    // persists and rewrites the cookie
//
// Save only sets the cookie when the token differs from what the browser
// presented, deletes it for a Reset session, and skips anonymous sessions that
// were never stored so bots do not fill the session store.
package sessiontransport
