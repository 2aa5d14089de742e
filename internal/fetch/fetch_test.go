package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestResolvePassesThroughNonURLs(t *testing.T) {
	r := NewResolver(time.Second)
	input := "Contract Clause 5: termination requires notice."
	if got := r.Resolve(context.Background(), input); got != input {
		t.Fatalf("plain text should pass through unchanged, got %q", got)
	}
}

func TestResolveExtractsDescriptionContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>menu noise</nav>
			<div class="description__text">Collective agreement terms apply.</div>
		</body></html>`))
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(time.Second)
	got := r.Resolve(context.Background(), srv.URL)
	if !strings.Contains(got, "Collective agreement terms apply.") {
		t.Fatalf("expected description text, got %q", got)
	}
	if strings.Contains(got, "menu noise") {
		t.Fatalf("description container should exclude surrounding chrome, got %q", got)
	}
}

func TestResolveFallsBackToBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><script>var x=1;</script></head><body><p>Plain posting text.</p></body></html>`))
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(time.Second)
	got := r.Resolve(context.Background(), srv.URL)
	if !strings.Contains(got, "Plain posting text.") {
		t.Fatalf("expected body text, got %q", got)
	}
	if strings.Contains(got, "var x=1") {
		t.Fatalf("script content should be stripped, got %q", got)
	}
}

func TestResolveReturnsInputOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(time.Second)
	if got := r.Resolve(context.Background(), srv.URL); got != srv.URL {
		t.Fatalf("failed fetch should return the original input, got %q", got)
	}
}

func TestResolveReturnsInputOnUnreachableHost(t *testing.T) {
	r := NewResolver(200 * time.Millisecond)
	input := "http://127.0.0.1:1/unreachable"
	if got := r.Resolve(context.Background(), input); got != input {
		t.Fatalf("unreachable host should return the original input, got %q", got)
	}
}
