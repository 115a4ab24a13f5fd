package memos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrMemoNotFound is returned when the Memos API answers 404.
var ErrMemoNotFound = errors.New("memo not found")

// Client is the HTTP wrapper for the Memos REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new Memos HTTP client.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateMemo creates a new memo via POST /api/v1/memos.
func (c *Client) CreateMemo(ctx context.Context, req CreateMemoRequest) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodPost, "/api/v1/memos", req, &memo); err != nil {
		return nil, fmt.Errorf("memos create: %w", err)
	}
	return &memo, nil
}

// GetMemo fetches a single memo by its UID.
func (c *Client) GetMemo(ctx context.Context, uid string) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodGet, "/api/v1/memos/"+url.PathEscape(uid), nil, &memo); err != nil {
		return nil, fmt.Errorf("memos get: %w", err)
	}
	return &memo, nil
}

// ListMemos lists every memo carrying tag, following nextPageToken. pageSize is the size
// of each page requested.
func (c *Client) ListMemos(ctx context.Context, tag string, pageSize int) ([]Memo, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(pageSize))
	if tag != "" {
		q.Set("filter", fmt.Sprintf("tag == '%s'", escapeFilterString(tag)))
	}

	var all []Memo
	seen := map[string]bool{}
	for {
		var listResp struct {
			Memos         []Memo `json:"memos"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v1/memos?"+q.Encode(), nil, &listResp); err != nil {
			return nil, fmt.Errorf("memos list: %w", err)
		}
		all = append(all, listResp.Memos...)

		token := listResp.NextPageToken
		if token == "" {
			return all, nil
		}
		if seen[token] {
			return nil, fmt.Errorf("memos list: page token %q repeated", token)
		}
		seen[token] = true
		q.Set("pageToken", token)
	}
}

// escapeFilterString quotes s for a single-quoted CEL string literal.
func escapeFilterString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// UpdateMemo patches a memo via PATCH /api/v1/memos/{uid}.
func (c *Client) UpdateMemo(ctx context.Context, uid string, req UpdateMemoRequest) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodPatch, "/api/v1/memos/"+url.PathEscape(uid), req, &memo); err != nil {
		return nil, fmt.Errorf("memos update: %w", err)
	}
	return &memo, nil
}

// DeleteMemo removes a memo via DELETE /api/v1/memos/{uid}.
func (c *Client) DeleteMemo(ctx context.Context, uid string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/memos/"+url.PathEscape(uid), nil, nil); err != nil {
		return fmt.Errorf("memos delete: %w", err)
	}
	return nil
}

// do sends body as JSON (when non-nil) and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call memos API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrMemoNotFound
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("memos API error %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ---- Request/Response types scoped to this package ----

// CreateMemoRequest is the body for POST /api/v1/memos.
type CreateMemoRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

// UpdateMemoRequest is the body for PATCH /api/v1/memos/{uid}.
type UpdateMemoRequest struct {
	Content    string `json:"content"`
	UpdateMask string `json:"updateMask"`
}

// Memo is the Memos API memo object.
type Memo struct {
	Name       string `json:"name"` // "memos/{uid}"
	UID        string `json:"uid"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
	CreateTime string `json:"createTime"`
	UpdateTime string `json:"updateTime"`
}
