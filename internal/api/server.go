package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/dgnsrekt/favicond/internal/entry"
	"github.com/dgnsrekt/favicond/internal/events"
	"github.com/dgnsrekt/favicond/internal/frontend"
	"github.com/dgnsrekt/favicond/internal/icons"
	"github.com/dgnsrekt/favicond/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Service interface {
	CreateEntry(ctx context.Context, title, iconPath, color string) (entry.Entry, error)
	UpdateEntry(ctx context.Context, id, title, iconPath, color string) (entry.Entry, error)
	CurrentEntry(ctx context.Context) (entry.Entry, error)
	GetEntry(ctx context.Context, id string) (entry.Entry, error)
	ListEntries(ctx context.Context) ([]entry.Entry, error)
	RemoveEntry(ctx context.Context, id string) error
	ResolveIcons(ctx context.Context, iconPath string) (icons.Manifest, error)
	CurrentIcons(ctx context.Context) (icons.Manifest, error)
	RenderIndex(ctx context.Context) ([]byte, error)
	WebManifest(ctx context.Context) (frontend.WebAppManifest, error)
}

// Options configures the non-API routes.
type Options struct {
	// Broker feeds the SSE and WebSocket endpoints; nil disables them.
	Broker *events.Broker
	// WWWDir is served under /local/; empty disables the mount.
	WWWDir string
}

func NewServer(svc Service, opts Options) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("favicond API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(docsHTML)); err != nil {
			slog.Debug("docs response write failed", "error", err)
		}
	})
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	registerEntryHandlers(api, svc)
	registerIconHandlers(api, svc)
	registerFrontendRoutes(router, svc, opts)

	return router
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var scan *icons.ScanError
	if errors.As(err, &scan) {
		switch scan.Reason {
		case icons.ReasonNotFound:
			return huma.Error404NotFound(fmt.Sprintf("icon directory not found: %s", scan.Path))
		case icons.ReasonPermissionDenied:
			return huma.Error403Forbidden(fmt.Sprintf("icon directory not readable: %s", scan.Path))
		case icons.ReasonInvalidPath:
			return huma.Error400BadRequest(fmt.Sprintf("invalid icon path: %s", scan.Path))
		default:
			return huma.Error500InternalServerError(scan.Error())
		}
	}
	var coded *types.CodedError
	if errors.As(err, &coded) {
		switch coded.Code {
		case types.CodeValidation:
			return huma.Error400BadRequest(coded.Message)
		case types.CodeDuplicate:
			return huma.Error409Conflict(coded.Message)
		case types.CodeEntryNotFound:
			return huma.Error404NotFound(coded.Message)
		case types.CodeStoreUnavailable:
			return huma.Error503ServiceUnavailable(coded.Message)
		default:
			return huma.Error500InternalServerError(fmt.Sprintf("%s: %s", coded.Code, coded.Message))
		}
	}
	return huma.Error500InternalServerError(err.Error())
}

// statusFor mirrors mapErr for the plain chi routes.
func statusFor(err error) int {
	var se huma.StatusError
	if errors.As(mapErr(err), &se) {
		return se.GetStatus()
	}
	return http.StatusInternalServerError
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
