package config

import (
	"time"
)

// Config is the root configuration for the dataset tools.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	News    NewsConfig    `yaml:"news"`
	Prices  PricesConfig  `yaml:"prices"`
	Symbols SymbolsConfig `yaml:"symbols"`
	Alpaca  AlpacaConfig  `yaml:"alpaca"`
	Log     LogConfig     `yaml:"log"`
}

// DatasetConfig describes the company listing, the headline window and the
// output file.
type DatasetConfig struct {
	Input           string `yaml:"input"`
	Column          string `yaml:"column"`
	Output          string `yaml:"output"`
	Header          bool   `yaml:"header"`
	StartDate       string `yaml:"start_date"` // YYYY-MM-DD
	EndDate         string `yaml:"end_date"`   // YYYY-MM-DD
	HeadlineLimit   int    `yaml:"headline_limit"`
	StartIndex      int    `yaml:"start_index"`
	Timezone        string `yaml:"timezone"` // IANA name or "Local"
	StripNonLetters bool   `yaml:"strip_non_letters"`
}

type NewsConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Subreddit string        `yaml:"subreddit"`
	SortField string        `yaml:"sort_field"`
	Delay     time.Duration `yaml:"delay"`
	Timeout   time.Duration `yaml:"timeout"`
}

type PricesConfig struct {
	Provider string        `yaml:"provider"` // yahoo or alpaca
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type SymbolsConfig struct {
	Provider        string        `yaml:"provider"` // iex or alpaca
	URL             string        `yaml:"url"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	MinScore        int           `yaml:"min_score"`
	Timeout         time.Duration `yaml:"timeout"`
}

// AlpacaConfig holds credentials for the alpaca providers. Empty fields are
// filled from ALPACA_API_KEY, ALPACA_SECRET_KEY and ALPACA_BASE_URL.
type AlpacaConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
	DataURL   string `yaml:"data_url"`
}

type LogConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

// UsesAlpaca reports whether any provider needs alpaca credentials.
func (c *Config) UsesAlpaca() bool {
	return c.Prices.Provider == ProviderAlpaca || c.Symbols.Provider == ProviderAlpaca
}
