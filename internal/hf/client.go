// Package hf is a minimal Hugging Face Inference API client used by the
// destination planning tools for free-form itinerary text.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const BaseURL = "https://api-inference.huggingface.co/models"

// DefaultModel is the instruction model used for itineraries.
const DefaultModel = "mistralai/Mistral-7B-Instruct-v0.2"

// Client calls the text generation inference endpoint.
type Client struct {
	Token   string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client with the given API token.
func NewClient(token string) *Client {
	return &Client{
		Token:   token,
		Model:   DefaultModel,
		BaseURL: BaseURL,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

type apiError struct {
	Error string `json:"error"`
}

// TextGeneration sends a prompt and returns the generated continuation,
// trimmed of surrounding whitespace.
func (c *Client) TextGeneration(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	if c.Token == "" {
		return "", fmt.Errorf("hf: API token not set")
	}
	body, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens:   maxNewTokens,
			Temperature:    0.7,
			DoSample:       true,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+c.Model, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("hf: request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("hf: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("hf: %s", apiErr.Error)
		}
		return "", fmt.Errorf("hf: status %d", resp.StatusCode)
	}

	var out []generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// Some deployments return a single object instead of an array.
		var single generateResponse
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return "", fmt.Errorf("hf: decoding response: %w", err)
		}
		return strings.TrimSpace(single.GeneratedText), nil
	}
	if len(out) == 0 {
		return "", fmt.Errorf("hf: empty response")
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}
