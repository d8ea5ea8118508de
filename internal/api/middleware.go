package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// streamPaths stay open for the life of a page and are logged at open and close.
var streamPaths = map[string]bool{
	"/api/v1/events": true,
	"/api/websocket": true,
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := middleware.GetReqID(r.Context())
		if streamPaths[r.URL.Path] {
			slog.Info("stream opened", "path", r.URL.Path, "remote", r.RemoteAddr, "request_id", reqID)
			defer func() {
				slog.Info("stream closed",
					"path", r.URL.Path,
					"remote", r.RemoteAddr,
					"request_id", reqID,
					"open_s", int(time.Since(start).Seconds()),
				)
			}()
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"route", routePattern(r),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", r.RemoteAddr,
			"request_id", reqID,
		)
	})
}

// routePattern returns the matched chi pattern, so entry IDs and /local/ file names
// do not fan out into one log key per request. Unmatched requests fall back to the path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
