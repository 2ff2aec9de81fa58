package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/backtest"
	"equity-options-lab/internal/config"
	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/observability"
	"equity-options-lab/internal/pricing"
	"equity-options-lab/internal/reporting"
	"equity-options-lab/internal/storage"
	chstore "equity-options-lab/internal/storage/clickhouse"
	"equity-options-lab/internal/storage/memory"
	"equity-options-lab/internal/storage/migrations"
	pgstore "equity-options-lab/internal/storage/postgres"
	"equity-options-lab/internal/strategy"
	"equity-options-lab/internal/util"
)

func main() {
	// Parse flags
	symbol := flag.String("symbol", "", "Symbol to report on (required)")
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	equityTypes := flag.String("strategies", "all", "Comma-separated equity strategy types, or \"all\"")
	optionsTypes := flag.String("options-strategies", "", "Comma-separated options strategy types, or \"all\"")
	initialCapital := flag.Float64("initial-capital", 100000, "Starting account capital per run")
	commission := flag.Float64("commission", 0, "Per-side commission per equity trade")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage seeded with generated demo bars")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	if *symbol == "" {
		logger.Fatal("--symbol is required")
	}
	if !*useMemory && *postgresDSN == "" && *clickhouseDSN == "" {
		logger.Fatal("either --use-memory, --postgres-dsn, or --clickhouse-dsn is required")
	}

	ctx := context.Background()
	obs := observability.NewMetrics("equity_options_lab")
	slogger := util.NewLogger(*logLevel)

	store, cleanup := openStore(ctx, logger, obs, *symbol, *postgresDSN, *clickhouseDSN, *useMemory)
	defer cleanup()

	if symbols, err := store.ListSymbols(ctx); err == nil {
		obs.SetSymbolsTracked(len(symbols))
	}

	series, err := storage.LoadSeries(ctx, store, *symbol)
	if err != nil {
		logger.Fatalf("load bars for %s: %v", *symbol, err)
	}
	obs.RecordBarsLoaded(backendName(*postgresDSN, *clickhouseDSN, *useMemory), series.Len())

	capital := decimal.NewFromFloat(*initialCapital)
	model := pricing.NewModel()

	// Equity runs, resolved through the default registry.
	registry := strategy.DefaultRegistry()
	var equityResults []*domain.BacktestResult
	engine, err := backtest.NewEngine(capital, decimal.NewFromFloat(*commission), slogger)
	if err != nil {
		logger.Fatalf("build engine: %v", err)
	}
	for _, typ := range selectTypes(logger, *equityTypes, registry.List()) {
		strat, ok := registry.Get(typ)
		if !ok {
			logger.Fatalf("strategy %s is not registered", typ)
		}
		started := time.Now()
		result, err := engine.Run(ctx, series, strat)
		if err != nil {
			obs.RecordRun("equity", "error", time.Since(started).Seconds())
			logger.Fatalf("run %s: %v", typ, err)
		}
		obs.RecordRun("equity", "ok", time.Since(started).Seconds())
		obs.RecordTrades("equity", len(result.Trades), series.Len())
		obs.RecordSignals(strat.Name(), len(result.Trades))
		equityResults = append(equityResults, result)
	}

	// Options runs
	var optionsResults []*domain.OptionsBacktestResult
	optEngine, err := backtest.NewOptionsEngine(capital, model, slogger)
	if err != nil {
		logger.Fatalf("build options engine: %v", err)
	}
	for _, typ := range selectTypes(logger, *optionsTypes, strategy.OptionsTypes()) {
		strat, err := strategy.OptionsFromConfig(strategy.Config{Type: typ}, model)
		if err != nil {
			logger.Fatalf("build strategy %s: %v", typ, err)
		}
		started := time.Now()
		result, err := optEngine.Run(ctx, series, strat)
		if err != nil {
			obs.RecordRun("options", "error", time.Since(started).Seconds())
			logger.Fatalf("run %s: %v", typ, err)
		}
		obs.RecordRun("options", "ok", time.Since(started).Seconds())
		obs.RecordTrades("options", len(result.Trades), series.Len())
		obs.RecordSignals(strat.Name(), len(result.Trades))
		optionsResults = append(optionsResults, result)
	}

	report, err := reporting.NewGenerator().Generate(*symbol, series, equityResults, optionsResults)
	if err != nil {
		logger.Fatalf("generate report: %v", err)
	}

	if err := writeReport(*outputDir, report, obs); err != nil {
		logger.Fatalf("write report: %v", err)
	}

	fmt.Println("Report generated successfully:")
	fmt.Printf("  - %s/REPORT.md\n", *outputDir)
	fmt.Printf("  - %s/SUMMARY.csv\n", *outputDir)
	for _, run := range report.Runs {
		fmt.Printf("  - %s/%s\n", *outputDir, tradesFileName(run))
	}
}

// selectTypes resolves the strategy selection flag against the known type
// list. An empty flag selects nothing, "all" selects everything.
func selectTypes(logger *log.Logger, selection string, known []string) []string {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return nil
	}
	if strings.EqualFold(selection, "all") {
		return known
	}

	valid := make(map[string]bool, len(known))
	for _, typ := range known {
		valid[typ] = true
	}

	var out []string
	for _, typ := range strings.Split(selection, ",") {
		typ = strings.ToUpper(strings.TrimSpace(typ))
		if !valid[typ] {
			logger.Fatalf("unknown strategy type %q, must be one of: %s", typ, strings.Join(known, ", "))
		}
		out = append(out, typ)
	}
	return out
}

// backendName maps the storage flags to the configured backend identifier.
func backendName(postgresDSN, clickhouseDSN string, useMemory bool) string {
	switch {
	case useMemory:
		return config.BackendMemory
	case postgresDSN != "":
		return config.BackendPostgres
	default:
		return config.BackendClickhouse
	}
}

func openStore(ctx context.Context, logger *log.Logger, obs *observability.Metrics, symbol, postgresDSN, clickhouseDSN string, useMemory bool) (storage.BarStore, func()) {
	switch {
	case useMemory:
		store := memory.NewBarStore()
		bars := demoBars()
		if err := store.InsertBars(ctx, symbol, bars); err != nil {
			logger.Fatalf("seed demo bars: %v", err)
		}
		obs.RecordBarsStored(config.BackendMemory, len(bars))
		logger.Printf("Seeded %d demo bars for %s", len(bars), symbol)
		return store, func() {}

	case postgresDSN != "":
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("apply postgres migrations: %v", err)
		}
		return pgstore.NewBarStore(pool), pool.Close

	default:
		conn, err := chstore.NewConn(ctx, clickhouseDSN)
		if err != nil {
			logger.Fatalf("connect to clickhouse: %v", err)
		}
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			logger.Fatalf("apply clickhouse migrations: %v", err)
		}
		return chstore.NewBarStore(conn), func() { _ = conn.Close() }
	}
}

// writeReport renders the report to REPORT.md, SUMMARY.csv, and one trade
// log CSV per run in the output directory.
func writeReport(dir string, report *reporting.Report, obs *observability.Metrics) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "REPORT.md"), []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		return err
	}
	obs.ReportsGenerated.WithLabelValues("markdown").Inc()

	if err := os.WriteFile(filepath.Join(dir, "SUMMARY.csv"), []byte(reporting.RenderSummaryCSV(report.Runs)), 0o644); err != nil {
		return err
	}
	obs.ReportsGenerated.WithLabelValues("csv").Inc()

	for _, run := range report.Runs {
		if err := os.WriteFile(filepath.Join(dir, tradesFileName(run)), []byte(reporting.RenderTradesCSV(run)), 0o644); err != nil {
			return err
		}
		obs.ReportsGenerated.WithLabelValues("csv").Inc()
	}
	return nil
}

// tradesFileName derives a filesystem-safe trade log name from the run's
// strategy name, e.g. "TRADES_SMA_CROSS_20_50.csv".
func tradesFileName(run reporting.RunSection) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(run.StrategyName) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteRune('_')
		}
	}
	return "TRADES_" + strings.TrimSuffix(b.String(), "_") + ".csv"
}
