package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dgnsrekt/favicond/internal/events"
	"github.com/go-chi/chi/v5"
)

func registerFrontendRoutes(router chi.Router, svc Service, opts Options) {
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.RenderIndex(r.Context())
		if err != nil {
			slog.Error("index render failed", "error", err)
			http.Error(w, http.StatusText(statusFor(err)), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if _, err := w.Write(page); err != nil {
			slog.Debug("index response write failed", "error", err)
		}
	})

	router.Get("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.WebManifest(r.Context())
		if err != nil {
			slog.Error("manifest render failed", "error", err)
			http.Error(w, http.StatusText(statusFor(err)), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "application/manifest+json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			slog.Debug("manifest response write failed", "error", err)
		}
	})

	if opts.WWWDir != "" {
		files := http.StripPrefix("/local/", http.FileServer(http.Dir(opts.WWWDir)))
		router.Get("/local/*", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			files.ServeHTTP(w, r)
		})
	}

	if opts.Broker != nil {
		router.Get("/api/v1/events", events.SSEHandler(opts.Broker))
		router.Get("/api/websocket", events.WebSocketHandler(opts.Broker))
	}
}
