package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgnsrekt/favicond/internal/events"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRequestLoggerUsesRoutePattern(t *testing.T) {
	logs := captureLogs(t)
	h := NewServer(&stubService{}, Options{})

	do(t, h, http.MethodGet, "/api/v1/entries/abc123", "")

	out := logs.String()
	if !strings.Contains(out, "route=/api/v1/entries/{entry_id}") {
		t.Fatalf("log missing route pattern: %s", out)
	}
	if strings.Contains(out, "abc123") {
		t.Fatalf("log contains raw entry id: %s", out)
	}
}

func TestRequestLoggerStreamOpenAndClose(t *testing.T) {
	logs := captureLogs(t)
	broker := events.NewBroker()
	srv := httptest.NewServer(NewServer(&stubService{}, Options{Broker: broker}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/events")
	if err != nil {
		t.Fatalf("GET events: %v", err)
	}
	resp.Body.Close()
	srv.Close()

	out := logs.String()
	if !strings.Contains(out, `msg="stream opened"`) {
		t.Fatalf("log missing stream open: %s", out)
	}
	if !strings.Contains(out, `msg="stream closed"`) {
		t.Fatalf("log missing stream close: %s", out)
	}
	if strings.Contains(out, `msg="http request"`) {
		t.Fatalf("stream logged as a request: %s", out)
	}
}
