// Package clientip extracts the client IP address from an HTTP request.
//
// GetIP consults proxy headers in this order and returns the first valid
// address:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For, leftmost entry
//  4. X-Real-IP
//  5. RemoteAddr
//
// RemoteIP uses only the connection address. Pick GetIP only when the server
// sits behind a proxy that overwrites these headers; a client talking to the
// server directly can set any of them.
//
//	ip := clientip.GetIP(r)
//	ip := clientip.RemoteIP(r)
//
// Addresses are parsed and normalized with net.ParseIP. The unspecified
// addresses 0.0.0.0 and :: are rejected. Neither function panics: if nothing
// parses, the raw RemoteAddr is returned.
package clientip
