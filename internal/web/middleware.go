package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const requestIDHeader = "X-Request-Id"

func (s *Server) withMiddleware(h http.Handler) http.Handler {
	h = s.corsHandler().Handler(h)
	h = requestID(h)
	h = hlog.AccessHandler(logRequest)(h)
	h = hlog.NewHandler(s.log)(h)
	return h
}

// corsHandler restricts browsers to the configured origins, or allows any origin
// when none are configured.
func (s *Server) corsHandler() *cors.Cors {
	if len(s.cfg.CORSOrigins) == 0 {
		return cors.AllowAll()
	}
	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})
}

func (s *Server) compress(h http.Handler) http.Handler {
	if !s.cfg.Gzip {
		return h
	}
	return gzhttp.GzipHandler(h)
}

// requestID echoes the caller's X-Request-Id or assigns a new one, and tags the
// request logger with it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("req_id", id)
		})
		next.ServeHTTP(w, r)
	})
}

func logRequest(r *http.Request, status, size int, d time.Duration) {
	l := hlog.FromRequest(r)
	event := l.Info()
	if status >= 500 {
		event = l.Error()
	} else if status >= 400 {
		event = l.Warn()
	}
	event.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("bytes", size).
		Dur("duration", d).
		Msg("http_request")
}
