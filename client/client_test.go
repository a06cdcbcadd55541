package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("User-Agent") != "agencyhub-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "image/png; charset=binary")
		w.Write([]byte("\x89PNG"))
	}))
	defer srv.Close()

	c := New("agencyhub-test")
	for i := 0; i < 2; i++ {
		asset, err := c.Fetch(context.Background(), srv.URL+"/logo.png")
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if asset.ContentType != "image/png" || string(asset.Body) != "\x89PNG" {
			t.Fatalf("unexpected asset %+v", asset)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single origin hit, got %d", hits.Load())
	}
}

func TestFetchCachesFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New("agencyhub-test")
	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
			t.Fatalf("expected error")
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected failure to be cached, got %d hits", hits.Load())
	}
}
