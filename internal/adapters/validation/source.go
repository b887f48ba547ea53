package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Source is an independent, lower-trust sentiment signal used for post-hoc
// validation of the consensus. Best-effort: callers treat any error as a
// neutral signal.
type Source interface {
	// GetSentiment returns a sentiment score in [-1,1] for the symbol
	GetSentiment(ctx context.Context, symbol string) (float64, error)
}

// HTTPSource fetches validation sentiment from a fear/greed style index API
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates new HTTP validation source
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// GetSentiment fetches the current sentiment for the symbol
func (s *HTTPSource) GetSentiment(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s?symbol=%s", s.url, symbol)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("validation API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Sentiment float64 `json:"sentiment"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode validation response: %w", err)
	}

	sentiment := result.Sentiment
	if sentiment < -1 {
		sentiment = -1
	} else if sentiment > 1 {
		sentiment = 1
	}

	return sentiment, nil
}
