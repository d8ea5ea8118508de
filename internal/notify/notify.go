// Package notify posts entry changes to an ntfy-style HTTP endpoint.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dgnsrekt/favicond/internal/entry"
)

// Hooks sends one plain-text message per lifecycle event.
type Hooks struct {
	endpoint string
	client   *http.Client
}

var _ entry.Hooks = (*Hooks)(nil)

// New returns nil when endpoint is empty.
func New(endpoint string, client *http.Client) *Hooks {
	if strings.TrimSpace(endpoint) == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Hooks{endpoint: endpoint, client: client}
}

func (h *Hooks) OnSetup(ctx context.Context, e entry.Entry) error {
	return h.post(ctx, fmt.Sprintf("Favicon entry %q added, icons from %s", e.Title, e.IconPath))
}

func (h *Hooks) OnOptionsUpdated(ctx context.Context, e entry.Entry) error {
	return h.post(ctx, fmt.Sprintf("Favicon entry updated: title %q, icons from %s", e.Title, e.IconPath))
}

func (h *Hooks) OnRemove(ctx context.Context, e entry.Entry) error {
	return h.post(ctx, fmt.Sprintf("Favicon entry %q removed, defaults restored", e.Title))
}

func (h *Hooks) post(ctx context.Context, message string) error {
	if err := Send(ctx, h.client, h.endpoint, message); err != nil {
		return err
	}
	slog.Debug("change notification sent", "endpoint", h.endpoint)
	return nil
}

// Send sends a message to the requested endpoint using HTTP POST.
func Send(ctx context.Context, client *http.Client, endpoint, message string) error {
	c := client
	if c == nil {
		c = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy notification failed: status=%d", resp.StatusCode)
	}
	return nil
}
