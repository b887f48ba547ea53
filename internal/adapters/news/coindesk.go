package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

const coindeskAPIURL = "https://www.coindesk.com/arc/outboundfeeds/news/?outputType=json&size=%d"

const defaultHeadlineLimit = 20

// Provider fetches raw news headlines for the refiner. News aggregation
// itself is an external concern; this client only assembles the NewsData
// handed to the refiner analyzer.
type Provider interface {
	// FetchNews returns the recent news window for the symbol
	FetchNews(ctx context.Context, symbol string) (*models.NewsData, error)
}

// CoinDeskProvider fetches headlines from the CoinDesk feed
type CoinDeskProvider struct {
	client *http.Client
	limit  int
}

// NewCoinDeskProvider creates new CoinDesk headline provider
func NewCoinDeskProvider() *CoinDeskProvider {
	return &CoinDeskProvider{
		client: &http.Client{Timeout: 10 * time.Second},
		limit:  defaultHeadlineLimit,
	}
}

// FetchNews fetches the latest headlines. The feed is market-wide; symbol
// filtering is left to the refiner, which sees the symbol in its prompt.
func (c *CoinDeskProvider) FetchNews(ctx context.Context, symbol string) (*models.NewsData, error) {
	url := fmt.Sprintf(coindeskAPIURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var result []struct {
		Canonical string `json:"canonical_url"`
		Headlines struct {
			Basic string `json:"basic"`
		} `json:"headlines"`
		DisplayDate time.Time `json:"display_date"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	headlines := make([]models.NewsHeadline, 0, len(result))
	for _, article := range result {
		if article.Headlines.Basic == "" {
			continue
		}
		headlines = append(headlines, models.NewsHeadline{
			Title:       article.Headlines.Basic,
			Source:      "coindesk",
			URL:         article.Canonical,
			PublishedAt: article.DisplayDate,
		})
	}

	logger.Debug("fetched headlines",
		zap.String("symbol", symbol),
		zap.Int("count", len(headlines)),
	)

	return &models.NewsData{
		Symbol:    symbol,
		Headlines: headlines,
		FetchedAt: time.Now(),
	}, nil
}
