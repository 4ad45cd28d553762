package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"sentimentdata/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $SENTIMENTDATA_CONFIG)")
	from := flag.String("from", "", "first day YYYY-MM-DD, default dataset.start_date")
	to := flag.String("to", "", "day after the last one YYYY-MM-DD, default dataset.end_date")
	out := flag.String("out", "data/news_history.csv", "output CSV file, one row of titles per day")
	size := flag.Int("size", 25, "headlines per day")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *from != "" {
		cfg.Dataset.StartDate = *from
	}
	if *to != "" {
		cfg.Dataset.EndDate = *to
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	after, before, err := cfg.Window()
	if err != nil {
		logger.Fatal("invalid date range", zap.Error(err))
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create output directory", zap.Error(err))
		}
	}
	file, err := os.Create(*out)
	if err != nil {
		logger.Fatal("failed to create output", zap.String("output", *out), zap.Error(err))
	}
	defer file.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	days, err := cfg.NewsClient(logger).DailyTopNews(ctx, after, before, *size, file)
	if err != nil {
		logger.Error("news history stopped early", zap.Int("days", days), zap.Error(err))
	}

	logger.Info("news history written", zap.String("output", *out), zap.Int("days", days))
}
