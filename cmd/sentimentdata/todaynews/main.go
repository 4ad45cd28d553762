package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"sentimentdata/pkg/config"
	"sentimentdata/pkg/dataset"
	"sentimentdata/pkg/dates"
	"sentimentdata/pkg/label"
	"sentimentdata/pkg/news"
	"sentimentdata/pkg/ticker"
)

type headlineSearcher interface {
	TodayTopNews(ctx context.Context, cal dates.Calendar, company string, size int) ([]news.Headline, error)
}

type sessionLabeler interface {
	Resolve(ctx context.Context, company string) (ticker.Info, error)
	Today(ctx context.Context, info ticker.Info) label.Outcome
}

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $SENTIMENTDATA_CONFIG)")
	symbol := flag.String("symbol", "", "company name or ticker to look up")
	size := flag.Int("size", 10, "maximum headlines to print")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "usage: todaynews -symbol <company or ticker>")
		os.Exit(2)
	}

	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	cal, err := cfg.Calendar()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}

	deriver, err := cfg.Deriver(logger)
	if err != nil {
		logger.Fatal("failed to build label deriver", zap.Error(err))
	}

	if err := printToday(context.Background(), os.Stdout, cal, cfg.NewsClient(logger), deriver, *symbol, *size, logger); err != nil {
		logger.Fatal("failed to report today's news", zap.String("symbol", *symbol), zap.Error(err))
	}
}

// printToday resolves query to a listed company, prints today's headlines
// that mention the company's name and the label of today's session.
func printToday(ctx context.Context, w io.Writer, cal dates.Calendar, searcher headlineSearcher, labeler sessionLabeler, query string, size int, logger *zap.Logger) error {
	info, err := labeler.Resolve(ctx, query)
	if err != nil {
		return err
	}

	headlines, err := searcher.TodayTopNews(ctx, cal, info.Name, size)
	if err != nil {
		logger.Warn("no headlines today", zap.String("company", info.Name), zap.Error(err))
	}

	fmt.Fprintf(w, "Headlines for %s (%s) on %s\n", info.Name, info.Symbol, cal.FormatEpoch(cal.TodayEpoch()))
	for _, h := range headlines {
		fmt.Fprintf(w, "  %s\n", dataset.CleanHeadline(h.Title))
	}

	outcome := labeler.Today(ctx, info)
	if outcome.PriceErr != nil {
		fmt.Fprintf(w, "%s: %s (no price data: %v)\n", outcome.Ticker, outcome.Label, outcome.PriceErr)
		return nil
	}
	fmt.Fprintf(w, "%s: %s\n", outcome.Ticker, outcome.Label)
	return nil
}
