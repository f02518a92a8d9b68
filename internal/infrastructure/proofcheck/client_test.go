package proofcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openleague/openleague/internal/platform/logging"
	"github.com/openleague/openleague/internal/platform/resilience"
)

func TestCheckProof_ReachableArtifact(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{Timeout: time.Second}, logging.NewNop())

	if err := client.CheckProof(context.Background(), srv.URL+"/proof.png"); err != nil {
		t.Fatalf("expected reachable proof, got %v", err)
	}
}

func TestCheckProof_MissingArtifact(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{Timeout: time.Second}, logging.NewNop())

	err := client.CheckProof(context.Background(), srv.URL+"/missing.png")
	if err == nil {
		t.Fatalf("expected error for missing artifact")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestCheckProof_RejectsBadURL(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{Timeout: time.Second}, logging.NewNop())

	cases := []string{"", "   ", "ftp://host/file", "http://"}
	for _, raw := range cases {
		if err := client.CheckProof(context.Background(), raw); err == nil {
			t.Fatalf("expected error for url %q", raw)
		}
	}
}

func TestCheckProof_ServerErrorsTripBreaker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{
		Timeout: time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if err := client.CheckProof(context.Background(), srv.URL+"/proof.png"); err == nil {
			t.Fatalf("expected error on attempt %d", i+1)
		}
	}

	err := client.CheckProof(context.Background(), srv.URL+"/proof.png")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestRedactProofURL(t *testing.T) {
	t.Parallel()

	got := redactProofURL("https://cdn.example.com/shots/final.png?sig=secret-token")
	if got != "https://cdn.example.com/shots/final.png?***" {
		t.Fatalf("unexpected redacted url: %s", got)
	}

	got = redactProofURL("https://cdn.example.com/shots/final.png")
	if got != "https://cdn.example.com/shots/final.png" {
		t.Fatalf("unexpected redacted url: %s", got)
	}
}
