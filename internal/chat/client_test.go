package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAskSendsQuestionWithBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chatbot/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("authorization = %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["question"] != "what are the top issues?" {
			t.Errorf("question = %q", body["question"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"mostly lint debt"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	reply, err := c.Ask(context.Background(), "what are the top issues?", "tok-1")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "mostly lint debt" {
		t.Fatalf("reply = %q", reply)
	}
}

func TestAskFallsBackThroughReplyFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want string
	}{
		{"message when answer empty", `{"answer":"","message":"from message"}`, "from message"},
		{"reply when both empty", `{"message":"","reply":"from reply"}`, "from reply"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			c := NewClient(srv.URL, time.Second)
			reply, err := c.Ask(context.Background(), "hello", "")
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if reply != tc.want {
				t.Fatalf("reply = %q, want %q", reply, tc.want)
			}
		})
	}
}

func TestAskRejectsFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Ask(context.Background(), "hello", ""); err == nil {
		t.Fatal("expected error for 502 response")
	}
	if _, err := c.Ask(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for empty question")
	}
}
