package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCompleteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  use neem oil  "}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "gpt-3.5-turbo", 5*time.Second)
	reply, err := c.Complete(context.Background(), "system", "user", 100, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "use neem oil" {
		t.Errorf("reply = %q, want trimmed content", reply)
	}
}

func TestCompleteMissingKey(t *testing.T) {
	c := NewClient("", "http://unused", "gpt-3.5-turbo", time.Second)
	if _, err := c.Complete(context.Background(), "s", "u", 10, 0); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"malformed json", http.StatusOK, `{"choices":`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c := NewClient("test-key", srv.URL, "gpt-3.5-turbo", 5*time.Second)
			if _, err := c.Complete(context.Background(), "s", "u", 10, 0); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	c := NewClient("test-key", "http://127.0.0.1:0", "gpt-3.5-turbo", time.Second)
	if _, err := c.Complete(context.Background(), "s", "u", 10, 0); err == nil {
		t.Error("expected an error for unreachable endpoint")
	}
}
