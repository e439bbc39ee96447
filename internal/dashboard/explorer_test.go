package dashboard

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"MarketLens/internal/model"
)

func explorerClock() func() time.Time {
	return func() time.Time { return time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC) }
}

func TestExplorerDefaultsToSP500(t *testing.T) {
	from := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{data: map[string][]model.Bar{
		"^GSPC": bars(from, 3800, 3900, 4000, 4100),
	}}
	svc := NewService(fetcher, WithClock(explorerClock()))

	got, err := svc.Explorer(context.Background(), testNav(), ExplorerRequest{})
	if err != nil {
		t.Fatalf("Explorer: %v", err)
	}
	if got.Symbol != "^GSPC" {
		t.Errorf("symbol = %s, want ^GSPC", got.Symbol)
	}
	if got.Name == "" || got.Blurb == "" {
		t.Error("catalog name or blurb missing")
	}
	if float64(got.LatestPrice) != 4100 {
		t.Errorf("LatestPrice = %v, want 4100", got.LatestPrice)
	}
	if float64(got.High52Week) != 4100 || float64(got.Low52Week) != 3800 {
		t.Errorf("52w range = %v..%v, want 3800..4100", got.Low52Week, got.High52Week)
	}
	want := (4100.0/3800 - 1) * 100
	if math.Abs(float64(got.YTDReturn)-want) > 1e-9 {
		t.Errorf("YTDReturn = %v, want %v", got.YTDReturn, want)
	}
	if math.Abs(float64(got.PeriodReturn)-want) > 1e-9 {
		t.Errorf("PeriodReturn = %v, want %v", got.PeriodReturn, want)
	}
	if got.AvgVolumeText == "" {
		t.Error("AvgVolumeText empty, want humanized volume")
	}
}

func TestExplorerUnknownSymbol(t *testing.T) {
	svc := NewService(&stubFetcher{}, WithClock(explorerClock()))

	_, err := svc.Explorer(context.Background(), testNav(), ExplorerRequest{Symbol: "AAPL"})
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidRequestError for a non-catalog symbol", err)
	}
}

func TestExplorerMonthlyReturns(t *testing.T) {
	fetcher := &stubFetcher{data: map[string][]model.Bar{
		"QQQ": {
			{Date: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), Close: 100, AdjClose: 100, Volume: 1},
			{Date: time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), Close: 110, AdjClose: 110, Volume: 1},
			{Date: time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), Close: 121, AdjClose: 121, Volume: 1},
			{Date: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC), Close: 133, AdjClose: 133, Volume: 1},
		},
	}}
	svc := NewService(fetcher, WithClock(explorerClock()))

	got, err := svc.Explorer(context.Background(), testNav(), ExplorerRequest{Symbol: "QQQ"})
	if err != nil {
		t.Fatalf("Explorer: %v", err)
	}
	if len(got.MonthlyReturns) != 2 {
		t.Fatalf("len(MonthlyReturns) = %d, want 2 (first month dropped)", len(got.MonthlyReturns))
	}
	feb := got.MonthlyReturns[0]
	if feb.Month != "Feb" || feb.Year != 2023 {
		t.Errorf("first cell = %s %d, want Feb 2023", feb.Month, feb.Year)
	}
	if math.Abs(float64(feb.Return)-10) > 1e-9 {
		t.Errorf("Feb return = %v, want 10", feb.Return)
	}
}

func TestExplorerOverlay(t *testing.T) {
	from := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{data: map[string][]model.Bar{
		"^GSPC": bars(from, 3800, 3900, 4000),
		"SPY":   bars(from, 380, 390, 400),
	}}
	svc := NewService(fetcher, WithClock(explorerClock()))

	got, err := svc.Explorer(context.Background(), testNav(), ExplorerRequest{Symbol: "^GSPC", OverlaySPY: true})
	if err != nil {
		t.Fatalf("Explorer: %v", err)
	}
	if len(got.Overlay) != 2 {
		t.Fatalf("len(Overlay) = %d, want 2", len(got.Overlay))
	}
	for _, s := range got.Overlay {
		if float64(s.Points[0].Value) != 100 {
			t.Errorf("%s overlay starts at %v, want 100", s.Ticker, s.Points[0].Value)
		}
	}
}

func TestExplorerOverlayBestEffort(t *testing.T) {
	from := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{
		data: map[string][]model.Bar{"^GSPC": bars(from, 3800, 3900, 4000)},
		errs: map[string]error{"SPY": errors.New("upstream down")},
	}
	svc := NewService(fetcher, WithClock(explorerClock()))

	got, err := svc.Explorer(context.Background(), testNav(), ExplorerRequest{Symbol: "^GSPC", OverlaySPY: true})
	if err != nil {
		t.Fatalf("Explorer: %v", err)
	}
	if got.Overlay != nil {
		t.Error("Overlay present despite SPY fetch failure")
	}
	if len(got.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one about the SPY overlay", got.Warnings)
	}
}
