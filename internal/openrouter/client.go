package openrouter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Model mirrors one entry of the /api/v1/models response. Fields the
// endpoint may omit are pointers or default to their zero value.
type Model struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Pricing       Pricing `json:"pricing"`
	ContextLength *int64  `json:"context_length"`
	MaxTokens     *int64  `json:"max_tokens"`
	UpdatedAt     string  `json:"updated_at"`
}

// Pricing carries per-token USD prices as decimal strings, the wire
// format OpenRouter uses.
type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

type modelsResponse struct {
	Data []Model `json:"data"`
}

// Client fetches the public models catalog. The endpoint needs no
// authentication.
type Client struct {
	BaseURL string
	Timeout time.Duration
}

// New returns a Client for the given models endpoint.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{BaseURL: baseURL, Timeout: timeout}
}

// ListModels performs a single GET against the models endpoint and
// returns the raw catalog entries in response order.
func (c *Client) ListModels() ([]Model, error) {
	client := &http.Client{Timeout: c.Timeout}
	resp, err := client.Get(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetching models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("models endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading models response: %w", err)
	}

	var parsed modelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding models response: %w", err)
	}

	return parsed.Data, nil
}
