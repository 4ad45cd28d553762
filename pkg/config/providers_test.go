package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimentdata/pkg/news"
	"sentimentdata/pkg/prices"
	"sentimentdata/pkg/ticker"
)

func TestConfig_PriceSource(t *testing.T) {
	cfg := Default()

	src, err := cfg.PriceSource(nil)
	require.NoError(t, err)
	yahoo, ok := src.(*prices.YahooSource)
	require.True(t, ok)
	assert.Equal(t, prices.DefaultYahooURL, yahoo.BaseURL)

	cfg.Prices.Provider = ProviderAlpaca
	cfg.Alpaca.APIKey, cfg.Alpaca.APISecret = "key", "secret"
	src, err = cfg.PriceSource(nil)
	require.NoError(t, err)
	assert.IsType(t, &prices.AlpacaSource{}, src)

	cfg.Prices.Provider = "other"
	_, err = cfg.PriceSource(nil)
	assert.Error(t, err)
}

func TestConfig_SymbolSource(t *testing.T) {
	cfg := Default()

	src, err := cfg.SymbolSource(nil)
	require.NoError(t, err)
	iex, ok := src.(*ticker.IEXSource)
	require.True(t, ok)
	assert.Equal(t, ticker.DefaultIEXURL, iex.URL)

	cfg.Symbols.Provider = ProviderAlpaca
	src, err = cfg.SymbolSource(nil)
	require.NoError(t, err)
	assert.IsType(t, &ticker.AlpacaSource{}, src)

	cfg.Symbols.Provider = "other"
	_, err = cfg.SymbolSource(nil)
	assert.Error(t, err)
}

func TestConfig_Resolver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol":"EX","name":"Example Inc"},{"symbol":"OTH","name":"Other Holdings"}]`))
	}))
	defer server.Close()

	cfg := Default()
	cfg.Symbols.URL = server.URL

	resolver, err := cfg.Resolver(nil)
	require.NoError(t, err)

	info, err := resolver.Resolve(context.Background(), "Example")
	require.NoError(t, err)
	assert.Equal(t, "EX", info.Symbol)
}

func TestConfig_NewsClient(t *testing.T) {
	cfg := Default()
	cfg.News.BaseURL = "http://news.test/search"
	cfg.News.Subreddit = "stocks"

	client := cfg.NewsClient(nil)
	url := client.SearchURL(news.Query{Title: "Example", Size: 3})
	assert.Contains(t, url, "http://news.test/search?")
	assert.Contains(t, url, "subreddit=stocks")
	assert.Contains(t, url, "title=Example")
}

func TestConfig_Normalizer(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "AT&T", cfg.Normalizer().Normalize("AT&T Inc."))

	cfg.Dataset.StripNonLetters = true
	assert.Equal(t, "AT T", cfg.Normalizer().Normalize("AT&T Inc."))
}
