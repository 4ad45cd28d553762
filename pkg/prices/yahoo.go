package prices

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"sentimentdata/pkg/dates"
	"sentimentdata/pkg/fetch"
)

const DefaultYahooURL = "https://finance.yahoo.com"

// YahooSource scrapes the historical quotes page of a ticker.
type YahooSource struct {
	BaseURL string
	Fetch   *fetch.Client
	Logger  *zap.Logger
}

func NewYahooSource(baseURL string, client *fetch.Client, logger *zap.Logger) *YahooSource {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YahooSource{
		BaseURL: baseURL,
		Fetch:   client,
		Logger:  logger,
	}
}

// HistoryURL builds the daily history page URL. period2 is pushed to the end
// of end's day so that session is part of the table.
func (s *YahooSource) HistoryURL(symbol string, start, end int64) string {
	params := url.Values{}
	params.Set("period1", fmt.Sprint(start))
	params.Set("period2", fmt.Sprint(end+dates.SecondsPerDay))
	params.Set("interval", "1d")
	params.Set("filter", "history")
	params.Set("frequency", "1d")
	params.Set("includeAdjustedClose", "true")
	return s.BaseURL + "/quote/" + url.PathEscape(symbol) + "/history?" + params.Encode()
}

func (s *YahooSource) History(ctx context.Context, symbol string, start, end int64) (*Table, error) {
	body, err := s.Fetch.Get(ctx, s.HistoryURL(symbol, start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}

	table, err := ParseHistoryTable(bytes.NewReader(body))
	if err != nil {
		s.Logger.Debug("history page unusable", zap.String("ticker", symbol), zap.Error(err))
		return nil, fmt.Errorf("history for %s: %w", symbol, err)
	}
	return table, nil
}
