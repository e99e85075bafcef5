// Package embedapi calls remote embedding services: OpenAI-compatible
// /v1/embeddings endpoints and Ollama's /api/embed.
package embedapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
	"golang.org/x/time/rate"
)

// Dialect selects the request and response shape.
type Dialect string

const (
	OpenAI Dialect = "openai"
	Ollama Dialect = "ollama"
)

const (
	DefaultOpenAIURL = "https://api.openai.com/v1/embeddings"
	DefaultOllamaURL = "http://localhost:11434/api/embed"

	defaultTimeout = 30 * time.Second
)

// Client embeds texts through an HTTP embedding endpoint.
type Client struct {
	Dialect Dialect
	BaseURL string // full endpoint URL
	APIKey  string
	Model   string

	HTTPClient *http.Client
	// Limiter throttles requests when set.
	Limiter *rate.Limiter
}

// New returns a client for dialect with its default endpoint.
// requestsPerSecond <= 0 disables throttling.
func New(dialect Dialect, model string, requestsPerSecond float64) *Client {
	c := &Client{Dialect: dialect, Model: model}
	switch dialect {
	case Ollama:
		c.BaseURL = DefaultOllamaURL
	default:
		c.BaseURL = DefaultOpenAIURL
	}
	if requestsPerSecond > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return c
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type ollamaResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Error      string      `json:"error"`
}

// Embed implements semantic.Embedder.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.BaseURL == "" || c.Model == "" {
		return nil, fmt.Errorf("embedapi: base URL and model required: %w", internalerr.ErrInvalidConfig)
	}
	if len(texts) == 0 {
		return nil, nil
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := c.send(ctx, texts)
	if err != nil {
		return nil, err
	}

	var vecs [][]float32
	switch c.Dialect {
	case Ollama:
		vecs, err = decodeOllama(body)
	default:
		vecs, err = decodeOpenAI(body)
	}
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedapi: got %d embeddings for %d texts", len(vecs), len(texts))
	}
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, fmt.Errorf("embedapi: text %d: %w", i, internalerr.ErrEmptyEmbedding)
		}
	}
	return vecs, nil
}

func (c *Client) send(ctx context.Context, texts []string) ([]byte, error) {
	reqBody, err := json.Marshal(embedRequest{Model: c.Model, Input: texts})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedapi: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedapi: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func decodeOpenAI(body []byte) ([][]float32, error) {
	var payload openAIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("embedapi error: %s", payload.Error.Message)
	}
	sort.SliceStable(payload.Data, func(i, j int) bool {
		return payload.Data[i].Index < payload.Data[j].Index
	})
	vecs := make([][]float32, len(payload.Data))
	for i, d := range payload.Data {
		vecs[i] = d.Embedding
	}
	return vecs, nil
}

func decodeOllama(body []byte) ([][]float32, error) {
	var payload ollamaResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("embedapi error: %s", payload.Error)
	}
	return payload.Embeddings, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}
