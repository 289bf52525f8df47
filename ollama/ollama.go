// Package ollama is the client for the local inference endpoint. The
// endpoint speaks the Ollama generate protocol: POST {model, prompt,
// stream:false} to /api/generate and read back {response: text}.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Defaults match a stock local Ollama install.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3:8b"

	defaultRetries = 5
	defaultDelay   = 3 * time.Second
)

// ErrUnreachable is returned once the retry budget is exhausted. Callers
// must treat it as "could not resolve", never as "no action requested".
var ErrUnreachable = errors.New("inference service unreachable")

// Client generates text through the local inference endpoint. Transport
// failures and non-success statuses are retried a bounded number of times
// with a fixed delay: no backoff, no circuit breaker.
type Client struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Retries    int
	Delay      time.Duration
}

// New returns a client for the given endpoint and model; empty arguments
// select the defaults.
func New(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		BaseURL:    baseURL,
		Model:      model,
		HTTPClient: http.DefaultClient,
		Retries:    defaultRetries,
		Delay:      defaultDelay,
	}
}

// Generate sends the prompt and returns the generated text. A single
// successful response short-circuits retrying.
func (c *Client) Generate(ctx context.Context, prompt string, stop ...string) (string, error) {
	payload := map[string]any{
		"model":  c.Model,
		"prompt": prompt,
		"stream": false,
	}
	if len(stop) > 0 {
		payload["stop"] = stop
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	retries := c.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	for attempt := 1; attempt <= retries; attempt++ {
		text, err := c.generate(ctx, client, body)
		if err == nil {
			return text, nil
		}
		log.Printf("attempt %d/%d against %v failed: %v", attempt, retries, c.BaseURL, err)

		if attempt == retries {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.Delay):
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", retries, ErrUnreachable)
}

func (c *Client) generate(ctx context.Context, client *http.Client, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("endpoint returned %v", resp.Status)
	}

	var jobj interface{}
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return "", fmt.Errorf("could not decode endpoint response: %w", err)
	}
	jval, err := jsonpath.Get("$.response", jobj)
	if err != nil {
		return "", fmt.Errorf("endpoint response has no response field: %w", err)
	}
	text, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("endpoint response field is %T, want string", jval)
	}
	return text, nil
}
