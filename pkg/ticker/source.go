package ticker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"

	"sentimentdata/pkg/fetch"
)

const DefaultIEXURL = "https://api.iextrading.com/1.0/ref-data/symbols"

// Info is one entry of the reference symbol list.
type Info struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Source supplies the full reference symbol list.
type Source interface {
	Symbols(ctx context.Context) ([]Info, error)
}

// IEXSource reads the list from a JSON endpoint returning [{symbol, name}, ...].
type IEXSource struct {
	URL    string
	Client *fetch.Client
}

func NewIEXSource(url string, client *fetch.Client) *IEXSource {
	if url == "" {
		url = DefaultIEXURL
	}
	return &IEXSource{URL: url, Client: client}
}

func (s *IEXSource) Symbols(ctx context.Context) ([]Info, error) {
	body, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch symbol list: %w", err)
	}

	var symbols []Info
	if err := json.Unmarshal(body, &symbols); err != nil {
		return nil, fmt.Errorf("failed to parse symbol list: %w", err)
	}
	return symbols, nil
}

// AssetLister is the part of the Alpaca trading client used for symbols.
type AssetLister interface {
	GetAssets(req alpaca.GetAssetsRequest) ([]alpaca.Asset, error)
}

// AlpacaSource lists active US equities from the Alpaca trading API.
type AlpacaSource struct {
	Client AssetLister
}

func NewAlpacaSource(client AssetLister) *AlpacaSource {
	return &AlpacaSource{Client: client}
}

func (s *AlpacaSource) Symbols(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assets, err := s.Client.GetAssets(alpaca.GetAssetsRequest{
		Status:     "active",
		AssetClass: "us_equity",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}

	symbols := make([]Info, 0, len(assets))
	for _, asset := range assets {
		symbols = append(symbols, Info{Symbol: asset.Symbol, Name: asset.Name})
	}
	return symbols, nil
}

// StaticSource serves a fixed list.
type StaticSource []Info

func (s StaticSource) Symbols(ctx context.Context) ([]Info, error) {
	return s, nil
}
