// internal/services/ai_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agrilink/agrilink-backend/internal/config"
)

// ErrAIUnavailable covers every failure mode of the upstream model: network
// errors, non-200 responses, and unparseable bodies. Callers decide whether
// to degrade or surface the error.
var ErrAIUnavailable = errors.New("AI service unavailable")

// AIService talks to a Cohere-compatible chat completion endpoint.
type AIService struct {
	config *config.Config
	client *http.Client
}

type chatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Preamble    string  `json:"preamble,omitempty"`
}

type chatResponse struct {
	Text string `json:"text"`
}

func NewAIService(cfg *config.Config) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		},
	}
}

// Chat sends a single-turn message to the model and returns its reply text.
func (s *AIService) Chat(ctx context.Context, message, preamble string) (string, error) {
	if s.config.AI.APIKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrAIUnavailable)
	}

	reqBody := chatRequest{
		Model:       s.config.AI.Model,
		Message:     message,
		Temperature: 0.3,
		MaxTokens:   500,
		Preamble:    preamble,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := s.config.AI.BaseURL + "/v1/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.AI.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("Chat completion request failed")
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrAIUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
		}).Warn("Chat completion returned non-200")
		return "", fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrAIUnavailable, err)
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("%w: empty response", ErrAIUnavailable)
	}

	return parsed.Text, nil
}
