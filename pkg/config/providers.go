package config

import (
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"go.uber.org/zap"

	"sentimentdata/pkg/fetch"
	"sentimentdata/pkg/label"
	"sentimentdata/pkg/names"
	"sentimentdata/pkg/news"
	"sentimentdata/pkg/prices"
	"sentimentdata/pkg/ticker"
)

// NewsClient builds the headline search client.
func (c *Config) NewsClient(logger *zap.Logger) *news.Client {
	return news.NewClient(
		news.WithBaseURL(c.News.BaseURL),
		news.WithSubreddit(c.News.Subreddit),
		news.WithSortField(c.News.SortField),
		news.WithDelay(c.News.Delay),
		news.WithFetcher(fetch.NewClient(c.News.Timeout, logger)),
		news.WithLogger(logger),
	)
}

// PriceSource builds the configured history provider.
func (c *Config) PriceSource(logger *zap.Logger) (prices.Source, error) {
	switch c.Prices.Provider {
	case ProviderAlpaca:
		client := marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    c.Alpaca.APIKey,
			APISecret: c.Alpaca.APISecret,
			BaseURL:   c.Alpaca.DataURL,
		})
		return prices.NewAlpacaSource(client)
	case ProviderYahoo:
		return prices.NewYahooSource(c.Prices.BaseURL, fetch.NewClient(c.Prices.Timeout, logger), logger), nil
	}
	return nil, fmt.Errorf("unknown prices provider %q", c.Prices.Provider)
}

// SymbolSource builds the configured reference list provider.
func (c *Config) SymbolSource(logger *zap.Logger) (ticker.Source, error) {
	switch c.Symbols.Provider {
	case ProviderAlpaca:
		client := alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    c.Alpaca.APIKey,
			APISecret: c.Alpaca.APISecret,
			BaseURL:   c.Alpaca.BaseURL,
		})
		return ticker.NewAlpacaSource(client), nil
	case ProviderIEX:
		return ticker.NewIEXSource(c.Symbols.URL, fetch.NewClient(c.Symbols.Timeout, logger)), nil
	}
	return nil, fmt.Errorf("unknown symbols provider %q", c.Symbols.Provider)
}

// Resolver builds the cached ticker resolver over the configured source.
func (c *Config) Resolver(logger *zap.Logger) (*ticker.Resolver, error) {
	source, err := c.SymbolSource(logger)
	if err != nil {
		return nil, err
	}
	return ticker.NewResolver(source,
		ticker.WithRefreshInterval(c.Symbols.RefreshInterval),
		ticker.WithMinScore(c.Symbols.MinScore),
		ticker.WithLogger(logger),
	), nil
}

// Deriver wires the resolver and price source into a label deriver.
func (c *Config) Deriver(logger *zap.Logger) (*label.Deriver, error) {
	resolver, err := c.Resolver(logger)
	if err != nil {
		return nil, err
	}
	source, err := c.PriceSource(logger)
	if err != nil {
		return nil, err
	}
	cal, err := c.Calendar()
	if err != nil {
		return nil, err
	}
	return label.NewDeriver(resolver, source, cal, logger), nil
}

// Normalizer returns the company name normalizer.
func (c *Config) Normalizer() names.Normalizer {
	return names.Normalizer{StripNonLetters: c.Dataset.StripNonLetters}
}
