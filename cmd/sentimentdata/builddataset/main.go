package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"sentimentdata/pkg/config"
	"sentimentdata/pkg/dataset"
	"sentimentdata/pkg/names"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $SENTIMENTDATA_CONFIG)")
	out := flag.String("out", "", "output CSV file, overrides dataset.output")
	start := flag.Int("start", 0, "index of the first company to process, overrides dataset.start_index")
	header := flag.Bool("header", false, "write the header row when the output file is new")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Dataset.Output = *out
		case "start":
			cfg.Dataset.StartIndex = *start
		case "header":
			cfg.Dataset.Header = *header
		}
	})
	if cfg.Dataset.StartIndex < 0 {
		log.Fatalf("-start must be >= 0, got %d", cfg.Dataset.StartIndex)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	companies, err := names.LoadCompanyNames(cfg.Dataset.Input, cfg.Dataset.Column)
	if err != nil {
		logger.Fatal("failed to load company names", zap.String("input", cfg.Dataset.Input), zap.Error(err))
	}

	after, before, err := cfg.Window()
	if err != nil {
		logger.Fatal("invalid date range", zap.Error(err))
	}

	deriver, err := cfg.Deriver(logger)
	if err != nil {
		logger.Fatal("failed to build label deriver", zap.Error(err))
	}

	writer, err := dataset.OpenWriter(cfg.Dataset.Output, cfg.Dataset.Header)
	if err != nil {
		logger.Fatal("failed to open output", zap.String("output", cfg.Dataset.Output), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := dataset.NewBuilder(
		cfg.NewsClient(logger),
		deriver,
		writer,
		dataset.Options{
			After:         after,
			Before:        before,
			HeadlineLimit: cfg.Dataset.HeadlineLimit,
			StartIndex:    cfg.Dataset.StartIndex,
			Normalizer:    cfg.Normalizer(),
		},
		dataset.ConsoleHooks(os.Stdout),
		logger,
	)

	summary, runErr := builder.Run(ctx, companies)
	if err := writer.Close(); err != nil {
		logger.Error("failed to close output", zap.Error(err))
	}

	fmt.Println(string(summary.Report()))

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Fatal("dataset run aborted", zap.Error(runErr))
	}
}
