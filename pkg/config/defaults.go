package config

import (
	"time"

	"sentimentdata/pkg/news"
	"sentimentdata/pkg/prices"
	"sentimentdata/pkg/ticker"
)

const (
	ProviderYahoo  = "yahoo"
	ProviderAlpaca = "alpaca"
	ProviderIEX    = "iex"
)

// Default values for optional configuration fields.
const (
	DefaultInput           = "data/nasdaqlisted.csv"
	DefaultColumn          = "companyName"
	DefaultOutput          = "data/nasdaq_news.csv"
	DefaultStartDate       = "2000-01-01"
	DefaultEndDate         = "2021-03-13"
	DefaultHeadlineLimit   = 25
	DefaultTimezone        = "Local"
	DefaultNewsURL         = news.DefaultBaseURL
	DefaultSubreddit       = news.DefaultSubreddit
	DefaultSortField       = news.DefaultSortField
	DefaultNewsDelay       = news.DefaultDelay
	DefaultTimeout         = 30 * time.Second
	DefaultPricesURL       = prices.DefaultYahooURL
	DefaultSymbolsURL      = ticker.DefaultIEXURL
	DefaultRefreshInterval = ticker.DefaultRefreshInterval
	DefaultAlpacaBaseURL   = "https://paper-api.alpaca.markets"
	DefaultLogLevel        = "info"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// Dataset defaults
	if c.Dataset.Input == "" {
		c.Dataset.Input = DefaultInput
	}
	if c.Dataset.Column == "" {
		c.Dataset.Column = DefaultColumn
	}
	if c.Dataset.Output == "" {
		c.Dataset.Output = DefaultOutput
	}
	if c.Dataset.StartDate == "" {
		c.Dataset.StartDate = DefaultStartDate
	}
	if c.Dataset.EndDate == "" {
		c.Dataset.EndDate = DefaultEndDate
	}
	if c.Dataset.HeadlineLimit == 0 {
		c.Dataset.HeadlineLimit = DefaultHeadlineLimit
	}
	if c.Dataset.Timezone == "" {
		c.Dataset.Timezone = DefaultTimezone
	}

	// News defaults
	if c.News.BaseURL == "" {
		c.News.BaseURL = DefaultNewsURL
	}
	if c.News.Subreddit == "" {
		c.News.Subreddit = DefaultSubreddit
	}
	if c.News.SortField == "" {
		c.News.SortField = DefaultSortField
	}
	if c.News.Delay == 0 {
		c.News.Delay = DefaultNewsDelay
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = DefaultTimeout
	}

	// Prices defaults
	if c.Prices.Provider == "" {
		c.Prices.Provider = ProviderYahoo
	}
	if c.Prices.BaseURL == "" {
		c.Prices.BaseURL = DefaultPricesURL
	}
	if c.Prices.Timeout == 0 {
		c.Prices.Timeout = DefaultTimeout
	}

	// Symbols defaults
	if c.Symbols.Provider == "" {
		c.Symbols.Provider = ProviderIEX
	}
	if c.Symbols.URL == "" {
		c.Symbols.URL = DefaultSymbolsURL
	}
	if c.Symbols.RefreshInterval == 0 {
		c.Symbols.RefreshInterval = DefaultRefreshInterval
	}
	if c.Symbols.Timeout == 0 {
		c.Symbols.Timeout = DefaultTimeout
	}

	if c.Alpaca.BaseURL == "" {
		c.Alpaca.BaseURL = DefaultAlpacaBaseURL
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
