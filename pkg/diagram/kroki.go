package diagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// Client sends diagram sources to a Kroki-compatible rendering service.
// One Client is shared across all diagrams of a run so the underlying
// connection pool is reused.
type Client struct {
	http *http.Client
	url  string
}

// NewClient creates a Client for the service at url. A zero timeout
// means requests wait indefinitely.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		url:  url,
	}
}

// renderRequest is the service's JSON request body.
type renderRequest struct {
	DiagramSource  string            `json:"diagram_source"`
	DiagramType    string            `json:"diagram_type"`
	OutputFormat   string            `json:"output_format"`
	DiagramOptions map[string]string `json:"diagram_options"`
}

// Render posts the diagram source to the service and returns the raw
// image bytes. The response's declared content type must resolve to
// exactly the requested format; a mismatch is a hard error so that no
// unrequested format ever lands in the cache under this key. Failures
// are not retried.
func (c *Client) Render(ctx context.Context, source string, kind Kind, format OutputFormat, renderer string) ([]byte, error) {
	opts := map[string]string{}
	if kind == KindMermaid && renderer != "html" {
		// Non-html renderers can't display HTML labels embedded in the
		// vector output, so text would silently vanish without this.
		opts["html-labels"] = "false"
	}

	body, err := json.Marshal(renderRequest{
		DiagramSource:  source,
		DiagramType:    kind.String(),
		OutputFormat:   format.String(),
		DiagramOptions: opts,
	})
	if err != nil {
		return nil, fmt.Errorf("encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send diagram to rendering service at %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rendering service at %s returned status %d", c.url, resp.StatusCode)
	}

	got, err := responseFormat(resp, format)
	if err != nil {
		return nil, err
	}
	if got != format {
		return nil, fmt.Errorf("rendering service returned %s output, expected %s", got, format)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rendered diagram: %w", err)
	}
	return data, nil
}

// responseFormat resolves the response's declared format. An absent
// Content-Type header assumes the requested format; an unparseable or
// unknown media type is a hard error.
func responseFormat(resp *http.Response, requested OutputFormat) (OutputFormat, error) {
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		return requested, nil
	}
	mediatype, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return 0, fmt.Errorf("parse response content type %q: %w", ct, err)
	}
	format, ok := formatFromMIME(mediatype)
	if !ok {
		return 0, fmt.Errorf("unexpected response content type %s (expected image/svg+xml or image/png)", mediatype)
	}
	return format, nil
}
