package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewProxyFunc_Explicit(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "http://secure-proxy.local:3128", "internal.example.com")

	cases := []struct {
		target string
		want   string
	}{
		{"http://raw.githubusercontent.com/data.csv", "http://proxy.local:3128"},
		{"https://raw.githubusercontent.com/data.csv", "http://secure-proxy.local:3128"},
		{"https://internal.example.com/data.csv", ""},
	}
	for _, c := range cases {
		u, _ := url.Parse(c.target)
		got, err := proxy(&http.Request{URL: u})
		if err != nil {
			t.Fatalf("proxy(%s): %v", c.target, err)
		}
		if c.want == "" {
			if got != nil {
				t.Errorf("expected no proxy for %s, got %s", c.target, got)
			}
			continue
		}
		if got == nil || got.String() != c.want {
			t.Errorf("proxy(%s) = %v, want %s", c.target, got, c.want)
		}
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	cases := map[string]string{
		"gapdash/0.1 (+https://github.com/ppiankov/gapdash)": "gapdash",
		"curl":  "curl",
		"":      "",
		"  x/1": "x",
	}
	for in, want := range cases {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}

func newRobotsServer(t *testing.T, robots string, status int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, robots)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRobotsChecker_CanFetch(t *testing.T) {
	var hits atomic.Int32
	server := newRobotsServer(t, "User-agent: gapdash\nDisallow: /private/\nCrawl-delay: 2\n", http.StatusOK, &hits)

	checker := NewRobotsChecker(server.Client(), "gapdash/0.1")
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/data/gapminder.csv")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("expected public path to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("expected crawl delay 2s, got %v", delay)
	}

	allowed, _, _ = checker.CanFetch(ctx, server.URL+"/private/gapminder.csv")
	if allowed {
		t.Error("expected private path to be disallowed")
	}

	if hits.Load() != 1 {
		t.Errorf("expected robots.txt to be fetched once, got %d", hits.Load())
	}
}

func TestRobotsChecker_Missing(t *testing.T) {
	var hits atomic.Int32
	server := newRobotsServer(t, "", http.StatusNotFound, &hits)

	checker := NewRobotsChecker(server.Client(), "gapdash/0.1")
	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything.csv")
	if err != nil || !allowed {
		t.Errorf("expected allow-all for missing robots.txt, got %v %v", allowed, err)
	}
}

func TestRobotsChecker_NonHTTP(t *testing.T) {
	checker := NewRobotsChecker(nil, "gapdash")
	allowed, _, err := checker.CanFetch(context.Background(), "file:///tmp/gapminder.csv")
	if err != nil || !allowed {
		t.Errorf("expected non-http URLs to be allowed, got %v %v", allowed, err)
	}
}
