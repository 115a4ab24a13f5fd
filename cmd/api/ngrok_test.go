package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testProbe(attempts int) ngrokProbe {
	return ngrokProbe{client: http.DefaultClient, attempts: attempts, interval: time.Millisecond}
}

func TestNgrokDetect(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "Prefers https",
			body: `{"tunnels":[{"public_url":"http://a.ngrok.io","proto":"http"},{"public_url":"https://a.ngrok.io","proto":"https"}]}`,
			want: "https://a.ngrok.io",
		},
		{
			name: "Falls back to first tunnel",
			body: `{"tunnels":[{"public_url":"tcp://0.tcp.ngrok.io:1234","proto":"tcp"}]}`,
			want: "tcp://0.tcp.ngrok.io:1234",
		},
		{
			name:    "No tunnels",
			body:    `{"tunnels":[]}`,
			wantErr: true,
		},
		{
			name:    "Garbage",
			body:    `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/tunnels" {
					t.Errorf("path got = %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := testProbe(2).detect(context.Background(), srv.URL+"/")
			if (err != nil) != tt.wantErr {
				t.Fatalf("detect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("detect() got = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNgrokDetectRetriesUntilTunnelAppears(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			_, _ = w.Write([]byte(`{"tunnels":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"tunnels":[{"public_url":"https://late.ngrok.io","proto":"https"}]}`))
	}))
	defer srv.Close()

	got, err := testProbe(5).detect(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("detect() error = %v", err)
	}
	if got != "https://late.ngrok.io" || calls.Load() != 3 {
		t.Errorf("got %q after %d calls", got, calls.Load())
	}
}

func TestNgrokDetectGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tunnels":[]}`))
	}))
	defer srv.Close()

	_, err := testProbe(2).detect(context.Background(), srv.URL)
	if !errors.Is(err, errNoTunnels) {
		t.Errorf("detect() error = %v, want errNoTunnels", err)
	}
}
