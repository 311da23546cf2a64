package server

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/validation"
)

// contentSecurityPolicy admits the inline page chrome and live script,
// webfont stylesheets and the websocket back to this host.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline' https:; " +
	"font-src 'self' https: data:; " +
	"img-src 'self' https: data:; " +
	"connect-src 'self' ws: wss:; " +
	"object-src 'none'; " +
	"frame-ancestors 'none'; " +
	"base-uri 'self'"

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection to the websocket upgrade.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols

	return hj.Hijack()
}

// Unwrap lets http.ResponseController and the websocket upgrade reach the
// underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) addMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		applySecurityHeaders(w)

		origin := r.Header.Get("Origin")
		if origin != "" && s.isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		// Browsers always send Origin on cross-site POSTs; tools like curl
		// send none and are let through.
		if r.Method == http.MethodPost && origin != "" && !s.isAllowedOrigin(origin) {
			s.rejectOrigin(w, r)

			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug(r.Context(), "Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

func applySecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Security-Policy", contentSecurityPolicy)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// rejectOrigin reports an ERR_INVALID_ORIGIN security error and answers
// 403.
func (s *Server) rejectOrigin(w http.ResponseWriter, r *http.Request) {
	err := errors.ErrInvalidOrigin(r.Header.Get("Origin")).
		WithContext("method", r.Method).
		WithContext("path", r.URL.Path).
		WithContext("ip", clientIP(r))
	s.errors.Handle(r.Context(), err)
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// checkOrigin validates the origin of a websocket handshake. A missing
// origin is rejected.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}
	if s.allowsAnyOrigin() {
		u, err := url.Parse(origin)

		return err == nil && (u.Scheme == "http" || u.Scheme == "https")
	}

	return s.isAllowedOrigin(origin)
}

func (s *Server) allowsAnyOrigin() bool {
	for _, allowed := range s.config.Server.AllowedOrigins {
		if allowed == "*" {
			return true
		}
	}

	return false
}

func (s *Server) isAllowedOrigin(origin string) bool {
	if s.allowsAnyOrigin() {
		return true
	}

	return validation.ValidateOrigin(origin, s.allowedOrigins()) == nil
}

// allowedOrigins adds the server's own address to the configured list.
func (s *Server) allowedOrigins() []string {
	own := s.config.Addr()

	return append(append([]string{}, s.config.Server.AllowedOrigins...), own)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if i := strings.LastIndex(ip, ":"); i != -1 {
		ip = ip[:i]
	}

	return ip
}
