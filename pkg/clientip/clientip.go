package clientip

import (
	"net"
	"net/http"
	"strings"
)

var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address, trusting proxy headers.
func GetIP(r *http.Request) string {
	for _, name := range proxyHeaders {
		v := r.Header.Get(name)
		if v == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		if ip, ok := normalize(v); ok {
			return ip
		}
	}
	return RemoteIP(r)
}

// RemoteIP returns the address of the peer that opened the connection.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip, ok := normalize(host); ok {
		return ip
	}
	return r.RemoteAddr
}

func normalize(s string) (string, bool) {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return "", false
	}
	return ip.String(), true
}
