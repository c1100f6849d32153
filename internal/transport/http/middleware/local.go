package middleware

import (
	"net"
	"net/http"

	"actiowatch/internal/domain"
)

// LocalOnly refuses requests from non-loopback peers while auth is
// disabled. With auth enabled it is a no-op.
func LocalOnly(auth domain.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Enabled() && !IsLoopback(r.RemoteAddr) {
				http.Error(w, "Forbidden: auth is disabled, only local clients are allowed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsLoopback reports whether a host:port (or bare host) is a loopback
// address. "localhost" counts.
func IsLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
