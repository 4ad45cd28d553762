package prices

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// BarLister is the part of the Alpaca market data client used for history.
type BarLister interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// AlpacaSource builds the history table from Alpaca daily bars.
type AlpacaSource struct {
	Client BarLister
	market *time.Location
}

func NewAlpacaSource(client BarLister) (*AlpacaSource, error) {
	est, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("failed to load EST timezone: %w", err)
	}
	return &AlpacaSource{Client: client, market: est}, nil
}

func (s *AlpacaSource) History(ctx context.Context, symbol string, start, end int64) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars, err := s.Client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Start:      time.Unix(start, 0),
		End:        time.Unix(end, 0).AddDate(0, 0, 1).Add(-time.Second),
		Adjustment: marketdata.Split,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("bars for %s: %w", symbol, ErrNoData)
	}

	table := &Table{Headings: DefaultHeadings, Rows: make([]PriceRow, 0, len(bars))}
	// bars arrive oldest first
	for i := len(bars) - 1; i >= 0; i-- {
		b := bars[i]
		y, m, d := b.Timestamp.In(s.market).Date()
		table.Rows = append(table.Rows, PriceRow{
			Date:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(),
			Open:     decimal.NewFromFloat(b.Open),
			High:     decimal.NewFromFloat(b.High),
			Low:      decimal.NewFromFloat(b.Low),
			Close:    decimal.NewFromFloat(b.Close),
			AdjClose: decimal.NewFromFloat(b.Close),
			Volume:   decimal.NewFromInt(int64(b.Volume)),
		})
	}
	return table, nil
}
