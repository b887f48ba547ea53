package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketSnapshot captures the market state passed to the scout analyzer.
// Prices are decimals; the engine never does arithmetic on them, it only
// forwards the snapshot upstream.
type MarketSnapshot struct {
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
	Last      decimal.Decimal `json:"last"`
	High24h   decimal.Decimal `json:"high_24h"`
	Low24h    decimal.Decimal `json:"low_24h"`
	Volume24h decimal.Decimal `json:"volume_24h"`
	Change24h decimal.Decimal `json:"change_24h"`
}

// NewsHeadline is a single news item forwarded to the refiner
type NewsHeadline struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// NewsData is the raw news window the refiner analyzes for a symbol
type NewsData struct {
	Symbol    string         `json:"symbol"`
	Headlines []NewsHeadline `json:"headlines"`
	FetchedAt time.Time      `json:"fetched_at"`
}
