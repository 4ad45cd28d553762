package config

import (
	"errors"
	"fmt"
	"time"

	"sentimentdata/pkg/dates"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Dataset.Input == "" {
		return errors.New("dataset.input is required")
	}
	if c.Dataset.Column == "" {
		return errors.New("dataset.column is required")
	}
	if c.Dataset.Output == "" {
		return errors.New("dataset.output is required")
	}
	if c.Dataset.HeadlineLimit < 1 {
		return errors.New("dataset.headline_limit must be >= 1")
	}
	if c.Dataset.StartIndex < 0 {
		return errors.New("dataset.start_index must be >= 0")
	}

	loc, err := c.Location()
	if err != nil {
		return err
	}
	cal := dates.Calendar{Loc: loc}
	start, err := cal.ToEpoch(c.Dataset.StartDate)
	if err != nil {
		return fmt.Errorf("dataset.start_date: %w", err)
	}
	end, err := cal.ToEpoch(c.Dataset.EndDate)
	if err != nil {
		return fmt.Errorf("dataset.end_date: %w", err)
	}
	if end <= start {
		return fmt.Errorf("dataset.end_date (%s) must be after start_date (%s)", c.Dataset.EndDate, c.Dataset.StartDate)
	}

	if c.News.Delay < 0 {
		return errors.New("news.delay must be >= 0")
	}

	switch c.Prices.Provider {
	case ProviderYahoo, ProviderAlpaca:
	default:
		return fmt.Errorf("prices.provider must be %q or %q, got %q", ProviderYahoo, ProviderAlpaca, c.Prices.Provider)
	}

	switch c.Symbols.Provider {
	case ProviderIEX, ProviderAlpaca:
	default:
		return fmt.Errorf("symbols.provider must be %q or %q, got %q", ProviderIEX, ProviderAlpaca, c.Symbols.Provider)
	}
	if c.Symbols.MinScore < 0 || c.Symbols.MinScore > 100 {
		return fmt.Errorf("symbols.min_score must be between 0 and 100, got %d", c.Symbols.MinScore)
	}

	if c.UsesAlpaca() {
		if c.Alpaca.APIKey == "" || c.Alpaca.APISecret == "" {
			return errors.New("alpaca.api_key and alpaca.api_secret are required (or ALPACA_API_KEY and ALPACA_SECRET_KEY)")
		}
	}

	return nil
}

// Location resolves dataset.timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Dataset.Timezone == "" || c.Dataset.Timezone == DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Dataset.Timezone)
	if err != nil {
		return nil, fmt.Errorf("dataset.timezone: %w", err)
	}
	return loc, nil
}

// Calendar returns the calendar dates are interpreted in.
func (c *Config) Calendar() (dates.Calendar, error) {
	loc, err := c.Location()
	if err != nil {
		return dates.Calendar{}, err
	}
	return dates.Calendar{Loc: loc}, nil
}

// Window returns the headline window in epoch seconds. The end date is
// exclusive, matching the upstream before bound.
func (c *Config) Window() (after, before int64, err error) {
	cal, err := c.Calendar()
	if err != nil {
		return 0, 0, err
	}
	if after, err = cal.ToEpoch(c.Dataset.StartDate); err != nil {
		return 0, 0, fmt.Errorf("dataset.start_date: %w", err)
	}
	if before, err = cal.ToEpoch(c.Dataset.EndDate); err != nil {
		return 0, 0, fmt.Errorf("dataset.end_date: %w", err)
	}
	return after, before, nil
}
