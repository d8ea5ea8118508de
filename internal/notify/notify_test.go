package notify

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dgnsrekt/favicond/internal/entry"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func okResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("ok")),
		Header:     make(http.Header),
	}
}

func TestSendPostsMessage(t *testing.T) {
	ctx := context.Background()

	var receivedMethod string
	var receivedPath string
	var receivedBody string
	var receivedContentType string

	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			receivedMethod = r.Method
			receivedPath = r.URL.Path
			receivedContentType = r.Header.Get("Content-Type")
			rawBody, err := io.ReadAll(r.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			receivedBody = string(rawBody)
			return okResponse(), nil
		}),
	}

	if err := Send(ctx, client, "http://example.com/favicond", "hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if got, want := receivedMethod, http.MethodPost; got != want {
		t.Fatalf("method = %q; want %q", got, want)
	}
	if got, want := receivedPath, "/favicond"; got != want {
		t.Fatalf("path = %q; want %q", got, want)
	}
	if got, want := receivedContentType, "text/plain"; got != want {
		t.Fatalf("content-type = %q; want %q", got, want)
	}
	if got, want := receivedBody, "hello"; got != want {
		t.Fatalf("body = %q; want %q", got, want)
	}
}

func TestSendReturnsErrorForServerError(t *testing.T) {
	client := &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       io.NopCloser(strings.NewReader("server failure")),
				Header:     make(http.Header),
			}, nil
		}),
	}

	err := Send(context.Background(), client, "http://example.com/favicond", "hello")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "ntfy notification failed") {
		t.Fatalf("error = %q; want to contain %q", err, "ntfy notification failed")
	}
}

func TestNewWithoutEndpoint(t *testing.T) {
	if h := New("  ", nil); h != nil {
		t.Fatalf("New() = %+v; want nil", h)
	}
}

func TestHooksDescribeChange(t *testing.T) {
	var bodies []string
	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			raw, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(raw))
			return okResponse(), nil
		}),
	}
	h := New("http://example.com/favicond", client)
	e := entry.Entry{ID: "e1", Title: "Cabin", IconPath: "/local/favicons/"}
	ctx := context.Background()

	if err := h.OnOptionsUpdated(ctx, e); err != nil {
		t.Fatalf("OnOptionsUpdated() error = %v", err)
	}
	if err := h.OnRemove(ctx, e); err != nil {
		t.Fatalf("OnRemove() error = %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("bodies = %v; want 2", bodies)
	}
	if !strings.Contains(bodies[0], `"Cabin"`) || !strings.Contains(bodies[0], "/local/favicons/") {
		t.Fatalf("update message = %q", bodies[0])
	}
	if !strings.Contains(bodies[1], "removed") {
		t.Fatalf("remove message = %q", bodies[1])
	}
}
