package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sentimentdata/pkg/label"
	"sentimentdata/pkg/names"
	"sentimentdata/pkg/news"
	"sentimentdata/pkg/ticker"
)

// DefaultHeadlineLimit caps the headlines fetched per company.
const DefaultHeadlineLimit = 25

// HeadlineSource is the news search the builder depends on.
type HeadlineSource interface {
	Search(ctx context.Context, q news.Query) ([]news.Headline, error)
}

// Labeler resolves a company once and then labels each of its headlines.
type Labeler interface {
	Resolve(ctx context.Context, company string) (ticker.Info, error)
	Derive(ctx context.Context, publishedAt int64, info ticker.Info) label.Outcome
}

// RowWriter receives finished rows.
type RowWriter interface {
	Write(e LabeledExample) error
}

// Options bound a run. After and Before are epoch seconds.
type Options struct {
	After         int64
	Before        int64
	HeadlineLimit int
	StartIndex    int
	Normalizer    names.Normalizer
}

type Builder struct {
	news    HeadlineSource
	labeler Labeler
	out     RowWriter
	opts    Options
	hooks   Hooks
	logger  *zap.Logger
	now     func() time.Time
}

func NewBuilder(source HeadlineSource, labeler Labeler, out RowWriter, opts Options, hooks Hooks, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HeadlineLimit <= 0 {
		opts.HeadlineLimit = DefaultHeadlineLimit
	}
	if opts.StartIndex < 0 {
		opts.StartIndex = 0
	}
	return &Builder{
		news:    source,
		labeler: labeler,
		out:     out,
		opts:    opts,
		hooks:   hooks,
		logger:  logger,
		now:     time.Now,
	}
}

// CleanHeadline drops commas and surrounding whitespace from a title.
func CleanHeadline(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, ",", ""))
}

// Run normalizes companies and writes one row per headline found for each of
// them, starting at Options.StartIndex. A company whose news search or ticker
// resolution fails is counted and skipped. Run stops early only on a write
// failure or a cancelled context.
func (b *Builder) Run(ctx context.Context, companies []string) (Summary, error) {
	summary := Summary{
		RunID:     uuid.NewString(),
		StartedAt: b.now(),
	}

	pending := 0
	if b.opts.StartIndex < len(companies) {
		pending = len(companies) - b.opts.StartIndex
	}

	b.logger.Info("starting dataset run",
		zap.String("run_id", summary.RunID),
		zap.Int("companies", pending),
		zap.Int("start_index", b.opts.StartIndex),
	)
	b.hooks.start(summary.RunID, pending)

	var runErr error
	for i := b.opts.StartIndex; i < len(companies); i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		company := b.opts.Normalizer.Normalize(companies[i])
		if company == "" {
			summary.Skipped++
			continue
		}

		summary.Companies++
		b.hooks.company(i, company)

		if err := b.processCompany(ctx, company, &summary); err != nil {
			if isFatal(err) {
				runErr = err
				break
			}
			// an interrupted company is not a data error
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				runErr = ctxErr
				break
			}
			summary.Errors++
			b.logger.Warn("company failed",
				zap.Int("index", i),
				zap.String("company", company),
				zap.Int("errors", summary.Errors),
				zap.Error(err),
			)
			b.hooks.error(company, err, summary.Errors)
		}
	}

	summary.Elapsed = b.now().Sub(summary.StartedAt)
	b.logger.Info("dataset run finished",
		zap.String("run_id", summary.RunID),
		zap.Int("rows", summary.Rows),
		zap.Int("errors", summary.Errors),
		zap.Int("fallbacks", summary.Fallbacks),
		zap.Duration("elapsed", summary.Elapsed),
	)
	b.hooks.finish(summary)

	return summary, runErr
}

// writeError aborts the run; every other per-company error is skipped.
type writeError struct{ err error }

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

func isFatal(err error) bool {
	_, ok := err.(*writeError)
	return ok
}

func (b *Builder) processCompany(ctx context.Context, company string, summary *Summary) error {
	headlines, err := b.news.Search(ctx, news.Query{
		After:  b.opts.After,
		Before: b.opts.Before,
		Title:  company,
		Size:   b.opts.HeadlineLimit,
	})
	if err != nil {
		return fmt.Errorf("fetch headlines: %w", err)
	}
	if len(headlines) == 0 {
		return nil
	}
	if len(headlines) > b.opts.HeadlineLimit {
		headlines = headlines[:b.opts.HeadlineLimit]
	}

	info, err := b.labeler.Resolve(ctx, company)
	if err != nil {
		return err
	}

	for _, h := range headlines {
		title := CleanHeadline(h.Title)
		if title == "" {
			continue
		}
		summary.Headlines++

		outcome := b.labeler.Derive(ctx, h.PublishedAt, info)
		if outcome.PriceErr != nil {
			summary.Fallbacks++
			b.logger.Debug("price fallback",
				zap.String("ticker", info.Symbol),
				zap.Int64("published_at", h.PublishedAt),
				zap.Error(outcome.PriceErr),
			)
		}

		row := LabeledExample{Label: outcome.Label, Ticker: outcome.Ticker, Headline: title}
		if err := b.out.Write(row); err != nil {
			return &writeError{err: err}
		}
		summary.Rows++
		b.hooks.row(row)
	}

	return nil
}
