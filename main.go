package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"boolsearch/internal/config"
	"boolsearch/internal/corpus"
	"boolsearch/internal/index"
	"boolsearch/internal/index/storage"
)

const usageText = `Usage: boolsearch [flags] <query>
Example: boolsearch информация AND поиск
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	corpusPath string
	stemmer    string
	listen     string
	freqOut    string
	serve      bool
	stats      bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("boolsearch", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML config file")
	flags.StringVar(&opts.corpusPath, "corpus", "", "Override the corpus TSV path")
	flags.StringVar(&opts.stemmer, "stemmer", "", "Override the stemmer (suffix or snowball)")
	flags.StringVar(&opts.listen, "listen", "", "Override the listen address (e.g. :8080)")
	flags.StringVar(&opts.freqOut, "freq-out", "", "Write the term frequency table to this path (.gz compresses)")
	flags.BoolVar(&opts.serve, "serve", false, "Serve the query API over HTTP")
	flags.BoolVar(&opts.stats, "stats", false, "Print tokenizer statistics for the corpus")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	bootLogger := slog.New(slog.NewTextHandler(stderr, nil))
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		bootLogger.Warn("failed to load .env", "error", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		bootLogger.Error("failed to load config", "error", err)
		return 1
	}
	logger := newLogger(cfg.Logging, stderr)

	query := strings.Join(flags.Args(), " ")
	analysisMode := opts.stats || opts.freqOut != ""
	if query == "" && !opts.serve && !analysisMode {
		fmt.Fprint(stdout, usageText)
		return 0
	}

	tokenizer := index.TokenizerFor(cfg.Analysis.Stemmer, cfg.NormalizeText())

	if analysisMode {
		if err := runAnalysis(cfg, opts, stdout, logger); err != nil {
			logger.Error("corpus analysis failed", "corpus", cfg.Corpus.Path, "error", err)
			return 1
		}
		if query == "" && !opts.serve {
			return 0
		}
	}

	telemetry := newTelemetry(ctx, logger, opts.serve && cfg.MetricsEnabled())

	snapshot, err := buildIndex(ctx, cfg.Corpus.Path, tokenizer, cfg.Index.Buckets, telemetry, logger)
	if err != nil {
		logger.Error("failed to build index", "corpus", cfg.Corpus.Path, "error", err)
		return 1
	}

	if opts.serve {
		server := newAPIServer(snapshot, telemetry, logger)
		if err := runServer(ctx, cfg.Server.Listen, server.routes(cfg.RequestLogsEnabled()), logger); err != nil {
			logger.Error("server stopped", "error", err)
			return 1
		}
		return 0
	}

	start := time.Now()
	resp := index.NewSearcher(snapshot).Search(index.SearchRequest{Query: query, Limit: cfg.ReportLimit()})
	telemetry.recordSearch(ctx, "cli", resp.TotalHits, time.Since(start))
	logger.Debug("query evaluated", "query", query, "hits", resp.TotalHits, "duration_ms", time.Since(start).Milliseconds())

	printReport(stdout, resp)
	return 0
}

func loadConfig(opts options) (config.AppConfig, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.AppConfig{}, err
	}
	cfg = config.ApplyEnv(cfg, os.LookupEnv)

	if opts.corpusPath != "" {
		cfg.Corpus.Path = opts.corpusPath
	}
	if opts.stemmer != "" {
		cfg.Analysis.Stemmer = opts.stemmer
	}
	if opts.listen != "" {
		cfg.Server.Listen = opts.listen
	}

	if err := cfg.Validate(); err != nil {
		return config.AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildIndex makes the single indexing pass over the corpus.
func buildIndex(ctx context.Context, path string, tokenizer index.Tokenizer, buckets int, telemetry *telemetry, logger *slog.Logger) (*index.Snapshot, error) {
	start := time.Now()
	writer := index.NewInMemoryIndex(tokenizer, buckets)

	skipped, err := corpus.Each(path, func(rec corpus.Record) {
		writer.IndexDocument(rec.ID, rec.Text)
	}, skipLogger(logger, path))
	if err != nil {
		return nil, err
	}

	snapshot := writer.Flush()
	stats := snapshot.Stats()
	if telemetry != nil {
		telemetry.recordBuild(ctx, stats, skipped, time.Since(start))
	}
	logger.Info("index built", "corpus", path, "documents", stats.Documents, "terms", stats.Terms, "postings", stats.Postings, "skipped", skipped, "longest_chain", stats.LongestChain, "duration_ms", time.Since(start).Milliseconds())
	return snapshot, nil
}

func skipLogger(logger *slog.Logger, path string) func(line int) {
	return func(line int) {
		logger.Debug("skipping record without tab separator", "corpus", path, "line", line)
	}
}

func runAnalysis(cfg config.AppConfig, opts options, w io.Writer, logger *slog.Logger) error {
	collector := index.NewStatsCollector(index.StemmerFor(cfg.Analysis.Stemmer), cfg.NormalizeText())
	skipped, err := corpus.Each(cfg.Corpus.Path, func(rec corpus.Record) {
		collector.Observe(rec.Text)
	}, skipLogger(logger, cfg.Corpus.Path))
	if err != nil {
		return err
	}
	stats := collector.Finish()
	ranked := stats.Frequencies.Ranked()

	if opts.stats {
		printStats(w, stats, ranked, skipped)
	}

	if opts.freqOut != "" {
		if err := storage.WriteFrequencies(opts.freqOut, ranked, storage.OptionsForPath(opts.freqOut)); err != nil {
			return err
		}
		logger.Info("term frequencies written", "path", opts.freqOut, "terms", len(ranked))
	}
	return nil
}

func printStats(w io.Writer, stats index.CorpusStats, ranked []index.TermFrequency, skipped int) {
	fmt.Fprintln(w, "=== Tokenizer ===")
	fmt.Fprintf(w, "Documents: %d (skipped lines: %d)\n", stats.Documents, skipped)
	fmt.Fprintf(w, "Tokens: %d\n", stats.Tokens)
	fmt.Fprintf(w, "Average token length: %.2f\n", stats.AverageTokenLength())
	fmt.Fprintf(w, "Elapsed: %s\n", stats.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Text volume: %s\n", humanize.IBytes(uint64(stats.Bytes)))
	fmt.Fprintf(w, "Throughput: %s/s\n", humanize.IBytes(uint64(stats.BytesPerSecond())))
	fmt.Fprintf(w, "Distinct terms: %s\n", humanize.Comma(int64(len(ranked))))
	fmt.Fprintf(w, "Zipf deviation: %.3f\n", index.ZipfDeviation(ranked))
}

func printReport(w io.Writer, resp index.SearchResponse) {
	fmt.Fprintf(w, "Found: %d documents\n", resp.TotalHits)
	for _, id := range resp.Hits {
		fmt.Fprintf(w, " - doc_id: %s\n", id)
	}
}
