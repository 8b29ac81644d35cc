package breach_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/breachwatch/breachwatch/internal/breach"
)

func TestAnalyticsSuccess(t *testing.T) {
	payload := `{"ExposedBreaches":{"breaches_details":[]}}`

	var gotPath, gotUA, gotAccept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := breach.NewClient(srv.URL, 5*time.Second)

	raw, err := c.Analytics(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}

	// payload passes through byte for byte
	if string(raw) != payload {
		t.Errorf("got payload %q, want %q", raw, payload)
	}

	if gotPath != "/breach-analytics?email=jane%40example.com" {
		t.Errorf("unexpected request path: %q", gotPath)
	}

	if gotUA != "Email-Breach-Checker" {
		t.Errorf("got User-Agent %q", gotUA)
	}

	if gotAccept != "application/json" {
		t.Errorf("got Accept %q", gotAccept)
	}
}

func TestAnalyticsUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := breach.NewClient(srv.URL, 5*time.Second)

	_, err := c.Analytics(context.Background(), "jane@example.com")

	var statusErr *breach.StatusError

	if !errors.As(err, &statusErr) {
		t.Fatalf("got %v, want StatusError", err)
	}

	if statusErr.Status != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", statusErr.Status)
	}
}

func TestAnalyticsTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// hold the response past the client timeout
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := breach.NewClient(srv.URL, 50*time.Millisecond)

	start := time.Now()
	_, err := c.Analytics(context.Background(), "jane@example.com")
	elapsed := time.Since(start)

	if !errors.Is(err, breach.ErrUnreachable) {
		t.Fatalf("got %v, want ErrUnreachable", err)
	}

	// fail fast, do not hang for the full server delay
	if elapsed > 2*time.Second {
		t.Errorf("lookup took %v, expected the timeout to cut it short", elapsed)
	}
}

func TestAnalyticsConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := breach.NewClient(srv.URL, time.Second)

	_, err := c.Analytics(context.Background(), "jane@example.com")

	if !errors.Is(err, breach.ErrUnreachable) {
		t.Fatalf("got %v, want ErrUnreachable", err)
	}
}
