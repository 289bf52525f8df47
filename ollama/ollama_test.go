package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("could not decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"response": "Food"})
	}))
	defer server.Close()

	client := New(server.URL, "test-model")
	text, err := client.Generate(context.Background(), "categorize this", "\n")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "Food" {
		t.Errorf("Generate = %q, want %q", text, "Food")
	}

	if got["model"] != "test-model" {
		t.Errorf("model = %v, want test-model", got["model"])
	}
	if got["prompt"] != "categorize this" {
		t.Errorf("prompt = %v, want the prompt", got["prompt"])
	}
	if got["stream"] != false {
		t.Errorf("stream = %v, want false", got["stream"])
	}
	if stop, ok := got["stop"].([]any); !ok || len(stop) != 1 || stop[0] != "\n" {
		t.Errorf("stop = %v, want [\\n]", got["stop"])
	}
}

func TestGenerateOmitsStopWhenUnset(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	}))
	defer server.Close()

	client := New(server.URL, "")
	if _, err := client.Generate(context.Background(), "hello"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, present := got["stop"]; present {
		t.Errorf("stop = %v, want the key absent", got["stop"])
	}
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "busy", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"response": "finally"})
	}))
	defer server.Close()

	client := New(server.URL, "")
	client.Delay = time.Millisecond

	text, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "finally" {
		t.Errorf("Generate = %q, want %q", text, "finally")
	}
	if attempts != 3 {
		t.Errorf("made %d attempts, want 3", attempts)
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "busy", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "")
	client.Retries = 2
	client.Delay = time.Millisecond

	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("Generate error = %v, want %v", err, ErrUnreachable)
	}
	if attempts != 2 {
		t.Errorf("made %d attempts, want 2", attempts)
	}
}

func TestGenerateHonorsContextBetweenRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "")
	client.Delay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Generate(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate error = %v, want %v", err, context.Canceled)
	}
}

func TestGenerateRejectsMissingResponseField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"done": true})
	}))
	defer server.Close()

	client := New(server.URL, "")
	client.Retries = 1
	client.Delay = time.Millisecond

	if _, err := client.Generate(context.Background(), "hello"); !errors.Is(err, ErrUnreachable) {
		t.Errorf("Generate error = %v, want %v", err, ErrUnreachable)
	}
}

func TestNewDefaults(t *testing.T) {
	client := New("", "")
	if client.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", client.BaseURL, DefaultBaseURL)
	}
	if client.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", client.Model, DefaultModel)
	}
	if client.Retries != defaultRetries || client.Delay != defaultDelay {
		t.Errorf("Retries, Delay = %d, %v, want %d, %v", client.Retries, client.Delay, defaultRetries, defaultDelay)
	}
}
