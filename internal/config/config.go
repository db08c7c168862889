package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppConfig captures configuration for corpus loading, analysis, the index, and the process surfaces.
type AppConfig struct {
	Corpus   CorpusConfig   `toml:"corpus" yaml:"corpus"`
	Analysis AnalysisConfig `toml:"analysis" yaml:"analysis"`
	Index    IndexConfig    `toml:"index" yaml:"index"`
	Report   ReportConfig   `toml:"report" yaml:"report"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Metrics  MetricsConfig  `toml:"metrics" yaml:"metrics"`
}

// CorpusConfig locates the tab-separated document collection.
type CorpusConfig struct {
	Path      string `toml:"path" yaml:"path"`
	Normalize *bool  `toml:"normalize" yaml:"normalize"`
}

// AnalysisConfig selects the stemmer shared by indexing and querying.
type AnalysisConfig struct {
	Stemmer string `toml:"stemmer" yaml:"stemmer"`
}

// IndexConfig sizes the inverted index.
type IndexConfig struct {
	Buckets int `toml:"buckets" yaml:"buckets"`
}

// ReportConfig bounds how many ids the CLI prints.
type ReportConfig struct {
	Limit *int `toml:"limit" yaml:"limit"`
}

// ServerConfig controls network settings.
type ServerConfig struct {
	Listen string `toml:"listen" yaml:"listen"`
}

// LoggingConfig sets the slog handler.
type LoggingConfig struct {
	Level       string `toml:"level" yaml:"level"`
	Format      string `toml:"format" yaml:"format"`
	RequestLogs *bool  `toml:"request_logs" yaml:"request_logs"`
}

// MetricsConfig enables counters/telemetry endpoints.
type MetricsConfig struct {
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

// Environment variables consulted by ApplyEnv.
const (
	EnvCorpus   = "BOOLSEARCH_CORPUS"
	EnvListen   = "BOOLSEARCH_LISTEN"
	EnvStemmer  = "BOOLSEARCH_STEMMER"
	EnvLogLevel = "BOOLSEARCH_LOG_LEVEL"
)

// DefaultConfig returns the baseline configuration used when no file is supplied.
func DefaultConfig() AppConfig {
	return AppConfig{
		Corpus:   CorpusConfig{Path: "corpus.tsv", Normalize: boolPtr(false)},
		Analysis: AnalysisConfig{Stemmer: "suffix"},
		Index:    IndexConfig{Buckets: 100003},
		Report:   ReportConfig{Limit: intPtr(7)},
		Server:   ServerConfig{Listen: ":8080"},
		Logging:  LoggingConfig{Level: "info", Format: "text", RequestLogs: boolPtr(true)},
		Metrics:  MetricsConfig{Enabled: boolPtr(true)},
	}
}

// Load reads the provided config path, merging it onto the defaults.
func Load(path string) (AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var fileCfg AppConfig
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(content, &fileCfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &fileCfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return AppConfig{}, errors.New("config file must be .toml, .yaml, or .yml")
	}

	merged := mergeConfig(cfg, fileCfg)
	return merged, nil
}

// ApplyEnv overrides settings from the environment. lookup is usually os.LookupEnv.
func ApplyEnv(cfg AppConfig, lookup func(string) (string, bool)) AppConfig {
	if v, ok := lookup(EnvCorpus); ok && v != "" {
		cfg.Corpus.Path = v
	}
	if v, ok := lookup(EnvListen); ok && v != "" {
		cfg.Server.Listen = v
	}
	if v, ok := lookup(EnvStemmer); ok && v != "" {
		cfg.Analysis.Stemmer = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = v
	}
	return cfg
}

// Validate rejects settings the index and logger cannot use.
func (cfg AppConfig) Validate() error {
	switch strings.ToLower(cfg.Analysis.Stemmer) {
	case "suffix", "snowball":
	default:
		return fmt.Errorf("analysis.stemmer must be suffix or snowball, got %q", cfg.Analysis.Stemmer)
	}
	if cfg.Index.Buckets <= 0 {
		return errors.New("index.buckets must be > 0")
	}
	if cfg.ReportLimit() < 0 {
		return errors.New("report.limit must be >= 0")
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	return nil
}

// ReportLimit returns the configured bound on printed ids.
func (cfg AppConfig) ReportLimit() int {
	if cfg.Report.Limit == nil {
		return 0
	}
	return *cfg.Report.Limit
}

// NormalizeText reports whether documents and queries are composed to NFC
// before tokenizing.
func (cfg AppConfig) NormalizeText() bool {
	return cfg.Corpus.Normalize != nil && *cfg.Corpus.Normalize
}

// MetricsEnabled reports whether telemetry should be initialised.
func (cfg AppConfig) MetricsEnabled() bool {
	return cfg.Metrics.Enabled != nil && *cfg.Metrics.Enabled
}

// RequestLogsEnabled reports whether the API logs each request.
func (cfg AppConfig) RequestLogsEnabled() bool {
	return cfg.Logging.RequestLogs == nil || *cfg.Logging.RequestLogs
}

func mergeConfig(base, override AppConfig) AppConfig {
	if override.Corpus.Path != "" {
		base.Corpus.Path = override.Corpus.Path
	}
	if override.Corpus.Normalize != nil {
		base.Corpus.Normalize = override.Corpus.Normalize
	}

	if override.Analysis.Stemmer != "" {
		base.Analysis.Stemmer = override.Analysis.Stemmer
	}

	if override.Index.Buckets != 0 {
		base.Index.Buckets = override.Index.Buckets
	}

	if override.Report.Limit != nil {
		base.Report.Limit = override.Report.Limit
	}

	if override.Server.Listen != "" {
		base.Server.Listen = override.Server.Listen
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}
	if override.Logging.RequestLogs != nil {
		base.Logging.RequestLogs = override.Logging.RequestLogs
	}

	if override.Metrics.Enabled != nil {
		base.Metrics.Enabled = override.Metrics.Enabled
	}

	return base
}

func boolPtr(v bool) *bool {
	return &v
}

func intPtr(v int) *int {
	return &v
}
