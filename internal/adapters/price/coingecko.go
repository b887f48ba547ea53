package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selivandex/consensus-engine/pkg/models"
)

const coingeckoAPIURL = "https://api.coingecko.com/api/v3"

// SnapshotProvider builds market snapshots for the scout handoff
type SnapshotProvider interface {
	// Snapshot returns the current market snapshot for the symbol
	Snapshot(ctx context.Context, symbol string) (*models.MarketSnapshot, error)
}

// CoinGeckoProvider implements SnapshotProvider using the free CoinGecko API
type CoinGeckoProvider struct {
	client *http.Client
}

// NewCoinGeckoProvider creates new CoinGecko snapshot provider
func NewCoinGeckoProvider() *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Snapshot fetches 24h market data for the symbol
func (cg *CoinGeckoProvider) Snapshot(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	coinID := mapSymbolToCoinGeckoID(symbol)

	url := fmt.Sprintf(
		"%s/coins/markets?vs_currency=usd&ids=%s&price_change_percentage=24h",
		coingeckoAPIURL, coinID,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := cg.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result []struct {
		CurrentPrice             float64 `json:"current_price"`
		High24h                  float64 `json:"high_24h"`
		Low24h                   float64 `json:"low_24h"`
		TotalVolume              float64 `json:"total_volume"`
		PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no market data for %s", symbol)
	}

	data := result[0]

	return &models.MarketSnapshot{
		Symbol:    symbol,
		Timestamp: time.Now(),
		Last:      decimal.NewFromFloat(data.CurrentPrice),
		High24h:   decimal.NewFromFloat(data.High24h),
		Low24h:    decimal.NewFromFloat(data.Low24h),
		Volume24h: decimal.NewFromFloat(data.TotalVolume),
		Change24h: decimal.NewFromFloat(data.PriceChangePercentage24h),
	}, nil
}

// mapSymbolToCoinGeckoID maps trading symbols to CoinGecko coin IDs
func mapSymbolToCoinGeckoID(symbol string) string {
	base := strings.ToUpper(symbol)
	if idx := strings.Index(base, "/"); idx > 0 {
		base = base[:idx]
	}

	mapping := map[string]string{
		"BTC":  "bitcoin",
		"ETH":  "ethereum",
		"SOL":  "solana",
		"BNB":  "binancecoin",
		"XRP":  "ripple",
		"ADA":  "cardano",
		"DOGE": "dogecoin",
	}

	if id, ok := mapping[base]; ok {
		return id
	}
	return strings.ToLower(base)
}
