package news

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"sentimentdata/pkg/dates"
)

// DailyTopNews walks [from, to) one day at a time and writes the top size
// titles of each day as one CSV record. Days whose search is unavailable are
// skipped. It returns the number of records written.
func (c *Client) DailyTopNews(ctx context.Context, from, to int64, size int, w io.Writer) (int, error) {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	written := 0
	for day := from; day < to; day += dates.SecondsPerDay {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		titles, err := c.Titles(ctx, Query{After: day, Before: day + dates.SecondsPerDay, Size: size})
		if errors.Is(err, ErrUnavailable) {
			c.logger.Info("skipping day", zap.Int64("day", day), zap.Error(err))
			continue
		}
		if err != nil {
			return written, err
		}

		if err := writer.Write(titles); err != nil {
			return written, fmt.Errorf("failed to write day %d: %w", day, err)
		}
		written++
	}

	writer.Flush()
	return written, writer.Error()
}

// TodayTopNews returns today's top headlines mentioning company.
func (c *Client) TodayTopNews(ctx context.Context, cal dates.Calendar, company string, size int) ([]Headline, error) {
	today := cal.TodayEpoch()
	return c.Search(ctx, Query{
		After:  today,
		Before: today + dates.SecondsPerDay,
		Title:  strings.ToLower(company),
		Size:   size,
	})
}
