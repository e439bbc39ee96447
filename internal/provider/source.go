package provider

import (
	"context"
	"time"

	"MarketLens/internal/model"
)

// SymbolData is one symbol's raw bars as delivered by the upstream source.
// Bars may be unsorted, carry NaN closes for non-trading days, and have NaN
// AdjClose when the source omits adjusted prices.
type SymbolData struct {
	Symbol string
	Bars   []model.Bar
}

// Source is the upstream market-data API behind the provider. Download is
// the primary bulk retrieval and may return a composite multi-symbol
// result; History is the single-ticker fallback.
type Source interface {
	Download(ctx context.Context, symbols []string, start, end time.Time) ([]SymbolData, error)
	History(ctx context.Context, symbol string, start, end time.Time) (SymbolData, error)
	Name() string
}

// QuoteSource provides optional quote enrichment (market capitalization).
type QuoteSource interface {
	MarketCap(ctx context.Context, symbol string) (float64, error)
}
