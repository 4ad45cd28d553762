package label

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sentimentdata/pkg/dates"
	"sentimentdata/pkg/prices"
	"sentimentdata/pkg/ticker"
)

// Label is the movement of a ticker's close across a headline's session.
type Label int

const (
	Down Label = 0
	Up   Label = 1
	Flat Label = 2
)

func (l Label) String() string {
	switch l {
	case Down:
		return "down"
	case Up:
		return "up"
	case Flat:
		return "flat"
	}
	return "label(" + strconv.Itoa(int(l)) + ")"
}

// ErrPricing marks an outcome that fell back to Down because the two closes
// could not be read.
var ErrPricing = errors.New("pricing failed")

// Compare labels the move from prior to current close.
func Compare(prior, current decimal.Decimal) Label {
	switch {
	case current.GreaterThan(prior):
		return Up
	case current.LessThan(prior):
		return Down
	default:
		return Flat
	}
}

// Outcome is the label for one headline. PriceErr is set, wrapping ErrPricing,
// when Label is the Down fallback rather than a real comparison.
type Outcome struct {
	Label    Label
	Ticker   string
	PriceErr error
}

// Resolver is the ticker lookup the Deriver depends on.
type Resolver interface {
	Resolve(ctx context.Context, query string) (ticker.Info, error)
}

// Deriver labels headlines in two ordered steps: Resolve a company to a
// ticker, then Derive the label for a publish time.
type Deriver struct {
	resolver Resolver
	prices   prices.Source
	calendar dates.Calendar
	logger   *zap.Logger
}

func NewDeriver(resolver Resolver, source prices.Source, calendar dates.Calendar, logger *zap.Logger) *Deriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deriver{
		resolver: resolver,
		prices:   source,
		calendar: calendar,
		logger:   logger,
	}
}

// Resolve maps a company name to its ticker. Failure wraps
// ticker.ErrUnresolved and means the headline cannot be labeled at all.
func (d *Deriver) Resolve(ctx context.Context, company string) (ticker.Info, error) {
	info, err := d.resolver.Resolve(ctx, company)
	if err != nil {
		return ticker.Info{}, fmt.Errorf("resolve %q: %w", company, err)
	}
	return info, nil
}

// Derive compares the close of the headline's session with the close of the
// session before it. The window covers whole calendar days, and sessions dated
// after the headline's day are ignored. It always returns an Outcome.
func (d *Deriver) Derive(ctx context.Context, publishedAt int64, info ticker.Info) Outcome {
	day := d.calendar.StartOfDay(publishedAt)
	prior := d.calendar.StartOfDay(d.calendar.LastWeekdayEpoch(publishedAt))

	table, err := d.prices.History(ctx, info.Symbol, prior, day)
	if err != nil {
		return d.fallback(info, err)
	}
	if table == nil {
		return d.fallback(info, prices.ErrNoData)
	}

	rows := sessionsThrough(table.Rows, d.calendar.UTCDate(publishedAt))
	if len(rows) < 2 {
		return d.fallback(info, fmt.Errorf("need two sessions, got %d", len(rows)))
	}

	current := rows[0].Close
	previous := rows[1].Close

	return Outcome{Label: Compare(previous, current), Ticker: info.Symbol}
}

// sessionsThrough drops the leading rows dated after date. Rows are most
// recent first.
func sessionsThrough(rows []prices.PriceRow, date int64) []prices.PriceRow {
	for i, row := range rows {
		if row.Date <= date {
			return rows[i:]
		}
	}
	return nil
}

// Today labels the most recent session for info.
func (d *Deriver) Today(ctx context.Context, info ticker.Info) Outcome {
	return d.Derive(ctx, d.calendar.TodayEpoch(), info)
}

func (d *Deriver) fallback(info ticker.Info, cause error) Outcome {
	d.logger.Debug("falling back to down label", zap.String("ticker", info.Symbol), zap.Error(cause))
	return Outcome{
		Label:    Down,
		Ticker:   info.Symbol,
		PriceErr: fmt.Errorf("%w for %s: %w", ErrPricing, info.Symbol, cause),
	}
}
