package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"glean/config"
	"glean/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	topic := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if topic == "" {
		fmt.Fprintln(os.Stderr, "usage: glean [-config file] <topic>")
		os.Exit(2)
	}

	// =========
	// Config
	// =========
	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	} else {
		cfg = config.Load()
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Pipeline
	// =========
	p, err := pipeline.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build pipeline", zap.Error(err))
	}

	summaries, err := p.Run(context.Background(), topic)
	if err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}

	// =========
	// Output
	// =========
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summaries); err != nil {
		logger.Fatal("failed to encode summaries", zap.Error(err))
	}
}
