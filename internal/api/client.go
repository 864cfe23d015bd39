// Package api is the typed HTTP client for the console's repository and
// worker endpoints. Loaders fetch raw records; correlation happens in the
// attribution and view packages over the already-fetched data.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glare-project/glare/pkg/errclass"
	"github.com/glare-project/glare/pkg/model"
)

// Client talks to one console origin.
type Client struct {
	origin *url.URL
	token  string
	http   *http.Client
}

// NewClient validates origin (http or https) and returns a client. The
// bearer token may be empty for unauthenticated deployments.
func NewClient(origin, token string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(origin), "/"))
	if err != nil {
		return nil, errclass.ErrOriginInvalid.WithMessagef("parse origin %q: %v", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errclass.ErrOriginInvalid.WithMessagef("origin %q: scheme must be http or https", origin)
	}
	if u.Host == "" {
		return nil, errclass.ErrOriginInvalid.WithMessagef("origin %q: missing host", origin)
	}

	return &Client{
		origin: u,
		token:  token,
		http:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Origin returns the configured origin URL.
func (c *Client) Origin() *url.URL {
	return c.origin
}

// StreamURL derives the live-activity stream endpoint for a repository by
// rewriting the origin scheme (http to ws, https to wss).
func (c *Client) StreamURL(repoID string) (string, error) {
	ws := *c.origin
	switch ws.Scheme {
	case "http":
		ws.Scheme = "ws"
	case "https":
		ws.Scheme = "wss"
	default:
		return "", errclass.ErrOriginInvalid.WithMessagef("cannot derive stream scheme from %q", ws.Scheme)
	}
	ws.Path = strings.TrimRight(ws.Path, "/") + "/repositories/" + url.PathEscape(repoID) + "/snapshot-ws"
	return ws.String(), nil
}

// ListSnapshots loads the repository's snapshot listing.
func (c *Client) ListSnapshots(ctx context.Context, repoID string) ([]model.SnapshotRecord, error) {
	body, err := c.do(ctx, http.MethodPost, "/repositories/"+url.PathEscape(repoID)+"/snapshots", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	records, err := ParseSnapshotListing(body)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return records, nil
}

// ListAttributions loads the worker-reported attribution records.
func (c *Client) ListAttributions(ctx context.Context, repoID string) ([]model.WorkerAttribution, error) {
	body, err := c.do(ctx, http.MethodGet, "/repositories/"+url.PathEscape(repoID)+"/snapshot-workers", nil)
	if err != nil {
		return nil, fmt.Errorf("list attributions: %w", err)
	}
	var payload struct {
		Snapshots []model.WorkerAttribution `json:"snapshots"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("list attributions: %w", errclass.ErrParse.WithMessagef("decode response: %v", err))
	}
	return payload.Snapshots, nil
}

// ListActivities loads the live running/pending activity records.
func (c *Client) ListActivities(ctx context.Context, repoID string) ([]model.SnapshotActivity, error) {
	body, err := c.do(ctx, http.MethodGet, "/repositories/"+url.PathEscape(repoID)+"/snapshot-activity", nil)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	var payload struct {
		Activities []model.SnapshotActivity `json:"activities"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("list activities: %w", errclass.ErrParse.WithMessagef("decode response: %v", err))
	}
	return payload.Activities, nil
}

// ListSnapshotFiles loads the file listing of one snapshot. workerID is
// optional and routes the listing through a specific worker.
func (c *Client) ListSnapshotFiles(ctx context.Context, repoID, snapshotID, workerID string) ([]model.FileEntry, error) {
	req := map[string]any{"snapshot": snapshotID}
	if workerID != "" {
		req["workerId"] = workerID
	}
	body, err := c.do(ctx, http.MethodPost, "/repositories/"+url.PathEscape(repoID)+"/snapshot/files", req)
	if err != nil {
		return nil, fmt.Errorf("list snapshot files: %w", err)
	}
	entries, err := ParseFileListing(body)
	if err != nil {
		return nil, fmt.Errorf("list snapshot files: %w", err)
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.origin.String()+path, body)
	if err != nil {
		return nil, errclass.ErrTransport.WithMessagef("build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errclass.ErrTransport.WithMessagef("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, errclass.ErrTransport.WithMessagef("read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyErrorResponse(resp.StatusCode, data)
	}
	return data, nil
}

// classifyErrorResponse maps a non-2xx response to a stable error class:
// domain errors (repository index damage, missing snapshots) keep their
// backend message and remediation hint; everything else is a transport
// error.
func classifyErrorResponse(status int, body []byte) error {
	message := errorMessage(body)
	if message == "" {
		message = http.StatusText(status)
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "index") &&
		(strings.Contains(lower, "inconsistent") || strings.Contains(lower, "missing") ||
			strings.Contains(lower, "pack") || strings.Contains(lower, "repair")):
		return errclass.ErrRepoIndex.WithMessage(message)
	case status == http.StatusNotFound || strings.Contains(lower, "no matching snapshot") ||
		strings.Contains(lower, "snapshot not found"):
		return errclass.ErrSnapshotNotFound.WithMessage(message)
	default:
		return errclass.ErrTransport.WithMessagef("status %d: %s", status, message)
	}
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return FirstUsefulErrorLine(payload.Message)
		}
		if payload.Error != "" {
			return FirstUsefulErrorLine(payload.Error)
		}
	}
	return FirstUsefulErrorLine(string(body))
}
