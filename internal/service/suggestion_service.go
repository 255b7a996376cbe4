package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"

	"atelier/internal/middleware"
	"atelier/internal/models"
)

// Suggestion kinds accepted by the remote image endpoint.
const (
	SuggestionKindHouse     = "house"
	SuggestionKindFloorplan = "floorplan"
)

// fallbackPools holds the bundled sample images served when the remote call
// fails or the endpoint is disabled, keyed by kind.
var fallbackPools = map[string][]string{
	SuggestionKindHouse: {
		"/media/samples/house-01.jpg",
		"/media/samples/house-02.jpg",
		"/media/samples/house-03.jpg",
		"/media/samples/house-04.jpg",
		"/media/samples/house-05.jpg",
	},
	SuggestionKindFloorplan: {
		"/media/samples/floorplan-01.jpg",
		"/media/samples/floorplan-02.jpg",
		"/media/samples/floorplan-03.jpg",
		"/media/samples/floorplan-04.jpg",
	},
}

// Suggestion is the result of a generation request. Fallback reports whether
// the URL came from the local sample pool rather than the remote endpoint.
type Suggestion struct {
	ImageURL string `json:"image_url"`
	Fallback bool   `json:"fallback"`
}

// SuggestionService exchanges a text prompt for an image URL. Once a
// non-empty prompt for a known kind is supplied the operation cannot fail:
// any remote trouble degrades to a sample image.
type SuggestionService struct {
	endpoint string
	client   *http.Client
}

// NewSuggestionService creates a suggestion service. An empty endpoint
// disables the remote call entirely; every request then falls back.
func NewSuggestionService(endpoint string, client *http.Client) *SuggestionService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SuggestionService{endpoint: endpoint, client: client}
}

type suggestionRequest struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

type suggestionResponse struct {
	Image string `json:"image"`
}

// Generate attempts exactly one remote call for the prompt. A blank prompt
// fails immediately with EmptyPrompt and no network call; any remote failure
// returns a random sample image for the kind instead of an error.
func (s *SuggestionService) Generate(ctx context.Context, prompt, kind string) (*Suggestion, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, models.NewEmptyPromptError()
	}
	if _, ok := fallbackPools[kind]; !ok {
		return nil, models.NewValidationError("Invalid suggestion kind")
	}

	if s.endpoint == "" {
		return s.fallback(kind, "suggestion endpoint disabled"), nil
	}

	body, err := json.Marshal(suggestionRequest{Prompt: prompt, Type: kind})
	if err != nil {
		return s.fallback(kind, "marshal request: "+err.Error()), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return s.fallback(kind, "build request: "+err.Error()), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return s.fallback(kind, "remote call failed: "+err.Error()), nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return s.fallback(kind, "remote returned "+resp.Status), nil
	}

	var decoded suggestionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return s.fallback(kind, "decode response: "+err.Error()), nil
	}
	if decoded.Image == "" {
		return s.fallback(kind, "remote response missing image"), nil
	}

	return &Suggestion{ImageURL: decoded.Image}, nil
}

// fallback picks a uniform-random sample image for the kind.
func (s *SuggestionService) fallback(kind, reason string) *Suggestion {
	pool := fallbackPools[kind]
	middleware.Logger.Warn("suggestion fallback",
		slog.String("kind", kind),
		slog.String("reason", reason),
	)
	return &Suggestion{
		ImageURL: pool[rand.Intn(len(pool))],
		Fallback: true,
	}
}
