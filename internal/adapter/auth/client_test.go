package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/verify" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"user_id": "u1"}`))
		case "Bearer empty-token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"user_id": ""}`))
		case "Bearer broken-token":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	ctx := context.Background()

	userID, err := client.Verify(ctx, "good-token")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected u1, got %q", userID)
	}

	_, err = client.Verify(ctx, "bad-token")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// A service-side failure is not a credential rejection.
	_, err = client.Verify(ctx, "broken-token")
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected an internal error, got %v", err)
	}

	// An empty user_id is unusable.
	_, err = client.Verify(ctx, "empty-token")
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected an internal error, got %v", err)
	}
}

func TestStaticVerifier(t *testing.T) {
	verifier := NewStaticVerifier(map[string]string{"dev-token": "dev-user"})
	ctx := context.Background()

	userID, err := verifier.Verify(ctx, "dev-token")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "dev-user" {
		t.Fatalf("expected dev-user, got %q", userID)
	}

	_, err = verifier.Verify(ctx, "other")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
