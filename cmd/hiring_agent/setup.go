package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/config"
	"github.com/jonathan/hiring-agent/internal/github"
	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/logging"
	"github.com/jonathan/hiring-agent/internal/pipeline"
)

// buildPipeline assembles the full scoring pipeline from configuration.
// A non-empty cacheDir overrides the configured GitHub replay cache
// location. The returned close function releases the model client.
func buildPipeline(jsonLogs bool, cacheDir string) (*pipeline.Pipeline, *config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	log, err := logging.New(jsonLogs, flagVerbose || cfg.Verbose)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	client, err := llm.NewClient(context.Background(), cfg.LLMConfig())
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}

	ghClient := github.NewClient(github.ClientConfig{
		BaseURL:  cfg.GitHubBaseURL,
		Token:    cfg.GitHubToken,
		CacheDir: cfg.CacheDir,
	}, log)
	enricher := github.NewEnricher(ghClient, client, log)

	p := pipeline.New(client, enricher, log)
	closeAll := func() {
		_ = client.Close()
		_ = log.Sync()
	}
	return p, cfg, log, closeAll, nil
}
