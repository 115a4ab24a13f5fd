package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var errNoTunnels = errors.New("ngrok has no active tunnels")

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

type ngrokProbe struct {
	client   *http.Client
	attempts int
	interval time.Duration
}

func newNgrokProbe() ngrokProbe {
	return ngrokProbe{
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: 10,
		interval: 3 * time.Second,
	}
}

// detect returns the public URL of the first HTTPS tunnel, or of any tunnel when none is HTTPS.
// ngrok usually starts alongside the service, so unreachable or empty answers are retried.
func (p ngrokProbe) detect(ctx context.Context, apiBase string) (string, error) {
	url := strings.TrimRight(apiBase, "/") + "/api/tunnels"

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		publicURL, err := p.fetch(ctx, url)
		if err == nil {
			return publicURL, nil
		}
		lastErr = err

		if attempt == p.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.interval):
		}
	}
	return "", fmt.Errorf("ngrok tunnel not found after %d attempts: %w", p.attempts, lastErr)
}

func (p ngrokProbe) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", errNoTunnels
}
