package label

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimentdata/pkg/dates"
	"sentimentdata/pkg/prices"
	"sentimentdata/pkg/ticker"
)

type stubPrices struct {
	table *prices.Table
	err   error

	symbol     string
	start, end int64
}

func (s *stubPrices) History(ctx context.Context, symbol string, start, end int64) (*prices.Table, error) {
	s.symbol, s.start, s.end = symbol, start, end
	return s.table, s.err
}

func closes(values ...float64) *prices.Table {
	table := &prices.Table{Headings: prices.DefaultHeadings}
	for _, v := range values {
		table.Rows = append(table.Rows, prices.PriceRow{Close: decimal.NewFromFloat(v)})
	}
	return table
}

var example = ticker.Info{Symbol: "EX", Name: "Example Inc"}

func TestCompare(t *testing.T) {
	tests := []struct {
		prior, current float64
		want           Label
	}{
		{100.0, 105.0, Up},
		{100.0, 95.0, Down},
		{100.0, 100.0, Flat},
		{52.10, 52.1, Flat},
	}

	for _, tt := range tests {
		got := Compare(decimal.NewFromFloat(tt.prior), decimal.NewFromFloat(tt.current))
		assert.Equal(t, tt.want, got, "prior=%v current=%v", tt.prior, tt.current)
	}
}

func TestLabel_String(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "flat", Flat.String())
	assert.Equal(t, "label(7)", Label(7).String())
}

func TestDeriver_Derive(t *testing.T) {
	tests := []struct {
		name  string
		table *prices.Table
		want  Label
	}{
		{"up", closes(105, 100), Up},
		{"down", closes(95, 100), Down},
		{"flat", closes(100, 100), Flat},
		{"extra sessions ignored", closes(52, 50, 10), Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDeriver(ticker.NewResolver(ticker.StaticSource{example}), &stubPrices{table: tt.table}, dates.UTC, nil)

			out := d.Derive(context.Background(), 1615507200, example)
			assert.Equal(t, tt.want, out.Label)
			assert.Equal(t, "EX", out.Ticker)
			assert.NoError(t, out.PriceErr)
		})
	}
}

func TestDeriver_Derive_Window(t *testing.T) {
	src := &stubPrices{table: closes(52, 50)}
	d := NewDeriver(nil, src, dates.UTC, nil)

	// Friday 2021-03-12 looks back to Wednesday 2021-03-10
	d.Derive(context.Background(), 1615507200, example)
	assert.Equal(t, "EX", src.symbol)
	assert.Equal(t, int64(1615334400), src.start)
	assert.Equal(t, int64(1615507200), src.end)
}

func TestDeriver_Derive_Fallback(t *testing.T) {
	tests := []struct {
		name string
		src  *stubPrices
	}{
		{"one row", &stubPrices{table: closes(52)}},
		{"no rows", &stubPrices{table: closes()}},
		{"no data", &stubPrices{err: prices.ErrNoData}},
		{"malformed", &stubPrices{err: &prices.RowError{Cell: "n/a"}}},
		{"network", &stubPrices{err: errors.New("connection reset")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDeriver(nil, tt.src, dates.UTC, nil)

			out := d.Derive(context.Background(), 1615507200, example)
			assert.Equal(t, Down, out.Label)
			assert.Equal(t, "EX", out.Ticker)
			assert.ErrorIs(t, out.PriceErr, ErrPricing)
		})
	}
}

func TestDeriver_Derive_FallbackKeepsCause(t *testing.T) {
	d := NewDeriver(nil, &stubPrices{err: prices.ErrNoData}, dates.UTC, nil)

	out := d.Derive(context.Background(), 1615507200, example)
	assert.ErrorIs(t, out.PriceErr, prices.ErrNoData)
}

func TestDeriver_Resolve(t *testing.T) {
	d := NewDeriver(ticker.NewResolver(ticker.StaticSource{example}), &stubPrices{}, dates.UTC, nil)

	info, err := d.Resolve(context.Background(), "Example")
	require.NoError(t, err)
	assert.Equal(t, "EX", info.Symbol)

	empty := NewDeriver(ticker.NewResolver(ticker.StaticSource{}), &stubPrices{}, dates.UTC, nil)
	_, err = empty.Resolve(context.Background(), "Example")
	assert.ErrorIs(t, err, ticker.ErrUnresolved)
	assert.NotErrorIs(t, err, ErrPricing)
}

func TestDeriver_Today(t *testing.T) {
	cal := dates.Calendar{
		Loc: time.UTC,
		Now: func() time.Time { return time.Date(2021, 3, 12, 18, 0, 0, 0, time.UTC) },
	}
	src := &stubPrices{table: closes(52, 50)}

	out := NewDeriver(nil, src, cal, nil).Today(context.Background(), example)
	assert.Equal(t, Up, out.Label)
	assert.Equal(t, int64(1615507200), src.end)
}
