//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads the application configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/manualqa/manualqa-go/assist"
	"github.com/manualqa/manualqa-go/prompt"
	"github.com/manualqa/manualqa-go/retrieval"
	"github.com/manualqa/manualqa-go/retrieval/strategy/hybrid"
	"github.com/manualqa/manualqa-go/retrieval/strategy/multiquery"
	"github.com/manualqa/manualqa-go/retrieval/strategy/rerank"
	"github.com/manualqa/manualqa-go/retrieval/strategy/semanticfilter"
)

// RetrievalConfig configures the enhancement strategies.
type RetrievalConfig struct {
	// Strategy is the strategy used for new questions.
	Strategy string `yaml:"strategy"`

	// Limit is the number of candidate passages requested per question.
	Limit int `yaml:"limit"`

	HybridTopK              int     `yaml:"hybrid_top_k"`
	RerankTopK              int     `yaml:"rerank_top_k"`
	MultiQueryTopK          int     `yaml:"multi_query_top_k"`
	SemanticFilterTopK      int     `yaml:"semantic_filter_top_k"`
	SemanticFilterThreshold float64 `yaml:"semantic_filter_threshold"`
}

// PromptConfig configures prompt assembly.
type PromptConfig struct {
	// Style selects the prompt template.
	Style string `yaml:"style"`

	// ChainOfThought switches all prompts to the reasoning template.
	ChainOfThought bool `yaml:"chain_of_thought"`

	// OverridesFile is an optional JSON file of query-keyword overrides.
	OverridesFile string `yaml:"overrides_file"`
}

// ServerConfig configures the debug HTTP server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// EnableCORS allows cross-origin requests to the debug endpoints.
	EnableCORS bool `yaml:"enable_cors"`
}

// Config is the root application configuration.
type Config struct {
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Prompt    PromptConfig    `yaml:"prompt"`
	Server    ServerConfig    `yaml:"server"`
}

// Load reads a config from the given path. A missing file yields the
// defaults, not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Retrieval: RetrievalConfig{
			Strategy:                retrieval.DefaultStrategy,
			Limit:                   assist.DefaultRetrieveLimit,
			HybridTopK:              hybrid.DefaultTopK,
			RerankTopK:              rerank.DefaultTopK,
			MultiQueryTopK:          multiquery.DefaultTopK,
			SemanticFilterTopK:      semanticfilter.DefaultTopK,
			SemanticFilterThreshold: semanticfilter.DefaultThreshold,
		},
		Prompt: PromptConfig{
			Style: string(prompt.StyleDetailed),
		},
		Server: ServerConfig{
			Addr:       ":8080",
			EnableCORS: true,
		},
	}
}

// Validate checks that names reference known strategies and styles.
func (c *Config) Validate() error {
	switch c.Retrieval.Strategy {
	case "hybrid", "rerank", "multi_query", "semantic_filter":
	default:
		return fmt.Errorf("unknown retrieval strategy %q", c.Retrieval.Strategy)
	}
	if !prompt.Style(c.Prompt.Style).Valid() {
		return fmt.Errorf("unknown prompt style %q", c.Prompt.Style)
	}
	if c.Retrieval.SemanticFilterThreshold < 0 || c.Retrieval.SemanticFilterThreshold > 1 {
		return fmt.Errorf("semantic filter threshold must be in [0, 1], got %v",
			c.Retrieval.SemanticFilterThreshold)
	}
	return nil
}

// EnhancerOptions translates the retrieval section into enhancer options.
func (c *Config) EnhancerOptions() []retrieval.Option {
	return []retrieval.Option{
		retrieval.WithHybridTopK(c.Retrieval.HybridTopK),
		retrieval.WithRerankTopK(c.Retrieval.RerankTopK),
		retrieval.WithMultiQueryTopK(c.Retrieval.MultiQueryTopK),
		retrieval.WithSemanticFilterTopK(c.Retrieval.SemanticFilterTopK),
		retrieval.WithSemanticFilterThreshold(c.Retrieval.SemanticFilterThreshold),
	}
}

// EngineOptions translates the config into assist engine options. The
// overrides file, when configured, is loaded here.
func (c *Config) EngineOptions() ([]assist.Option, error) {
	opts := []assist.Option{
		assist.WithEnhancer(retrieval.New(c.EnhancerOptions()...)),
		assist.WithStrategy(c.Retrieval.Strategy),
		assist.WithPromptStyle(prompt.Style(c.Prompt.Style)),
		assist.WithChainOfThought(c.Prompt.ChainOfThought),
	}
	if c.Retrieval.Limit > 0 {
		opts = append(opts, assist.WithRetrieveLimit(c.Retrieval.Limit))
	}
	if c.Prompt.OverridesFile != "" {
		overrides, err := prompt.LoadOverrides(c.Prompt.OverridesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, assist.WithPromptOverrides(overrides))
	}
	return opts, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Retrieval.Strategy == "" {
		cfg.Retrieval.Strategy = def.Retrieval.Strategy
	}
	if cfg.Retrieval.Limit == 0 {
		cfg.Retrieval.Limit = def.Retrieval.Limit
	}
	if cfg.Retrieval.HybridTopK == 0 {
		cfg.Retrieval.HybridTopK = def.Retrieval.HybridTopK
	}
	if cfg.Retrieval.RerankTopK == 0 {
		cfg.Retrieval.RerankTopK = def.Retrieval.RerankTopK
	}
	if cfg.Retrieval.MultiQueryTopK == 0 {
		cfg.Retrieval.MultiQueryTopK = def.Retrieval.MultiQueryTopK
	}
	if cfg.Retrieval.SemanticFilterTopK == 0 {
		cfg.Retrieval.SemanticFilterTopK = def.Retrieval.SemanticFilterTopK
	}
	if cfg.Retrieval.SemanticFilterThreshold == 0 {
		cfg.Retrieval.SemanticFilterThreshold = def.Retrieval.SemanticFilterThreshold
	}
	if cfg.Prompt.Style == "" {
		cfg.Prompt.Style = def.Prompt.Style
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}
