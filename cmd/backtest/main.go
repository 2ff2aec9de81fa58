package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"equity-options-lab/internal/backtest"
	"equity-options-lab/internal/config"
	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/idhash"
	"equity-options-lab/internal/metrics"
	"equity-options-lab/internal/observability"
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
	configPath := flag.String("config", "", "YAML run configuration (overrides the other flags)")
	symbol := flag.String("symbol", "", "Symbol to backtest (required without --config)")
	strategyType := flag.String("strategy", strategy.TypeSMACross, "Strategy type: "+strings.Join(strategy.EquityTypes(), ", "))
	initialCapital := flag.Float64("initial-capital", 100000, "Starting account capital")
	commission := flag.Float64("commission", 0, "Per-side commission per trade")
	startDate := flag.String("start", "", "Range start date YYYY-MM-DD (inclusive)")
	endDate := flag.String("end", "", "Range end date YYYY-MM-DD (inclusive)")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage seeded with generated demo bars")

	// Output
	outputJSON := flag.Bool("json", false, "Output as JSON")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (optional)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[backtest] ", log.LstdFlags)

	cfg := resolveConfig(logger, *configPath, *symbol, *strategyType,
		*initialCapital, *commission, *startDate, *endDate,
		*postgresDSN, *clickhouseDSN, *useMemory, *logLevel)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	obs := observability.NewMetrics("equity_options_lab")
	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	store, cleanup := openStore(ctx, logger, obs, cfg)
	defer cleanup()

	if symbols, err := store.ListSymbols(ctx); err == nil {
		obs.SetSymbolsTracked(len(symbols))
	}

	series := loadSeries(ctx, logger, obs, store, cfg)

	strat, err := strategy.EquityFromConfig(cfg.Strategy)
	if err != nil {
		logger.Fatalf("build strategy: %v", err)
	}

	engine, err := backtest.NewEngine(
		decimal.NewFromFloat(cfg.Backtest.InitialCapital),
		decimal.NewFromFloat(cfg.Backtest.Commission),
		util.NewLogger(cfg.Logging.Level),
	)
	if err != nil {
		logger.Fatalf("build engine: %v", err)
	}

	runID := idhash.RunID(strat.Name(), cfg.Backtest.StartDate, cfg.Backtest.EndDate,
		decimal.NewFromFloat(cfg.Backtest.InitialCapital).StringFixed(2))
	logger.Printf("Running backtest: run=%s symbol=%s strategy=%s bars=%d",
		runID, cfg.Backtest.Symbol, strat.Name(), series.Len())

	started := time.Now()
	result, err := engine.Run(ctx, series, strat)
	if err != nil {
		obs.RecordRun("equity", "error", time.Since(started).Seconds())
		logger.Fatalf("backtest failed: %v", err)
	}
	obs.RecordRun("equity", "ok", time.Since(started).Seconds())
	obs.RecordTrades("equity", len(result.Trades), series.Len())
	obs.RecordSignals(strat.Name(), len(result.Trades))

	summary := metrics.Compute(result)

	// Output result
	if *outputJSON {
		output, _ := json.MarshalIndent(struct {
			RunID   string                 `json:"run_id"`
			Symbol  string                 `json:"symbol"`
			Result  *domain.BacktestResult `json:"result"`
			Summary metrics.Summary        `json:"summary"`
		}{runID, cfg.Backtest.Symbol, result, summary}, "", "  ")
		fmt.Println(string(output))
	} else {
		printResult(cfg.Backtest.Symbol, result, summary)
	}
}

// resolveConfig builds the run configuration from either the YAML file or
// the individual flags. Flags are ignored when --config is given so a run
// is always described by exactly one source.
func resolveConfig(
	logger *log.Logger,
	configPath, symbol, strategyType string,
	initialCapital, commission float64,
	startDate, endDate string,
	postgresDSN, clickhouseDSN string,
	useMemory bool,
	logLevel string,
) *config.Config {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Fatalf("load config: %v", err)
		}
		return cfg
	}

	if symbol == "" {
		logger.Fatal("--symbol is required")
	}

	backend := config.BackendMemory
	switch {
	case useMemory:
	case postgresDSN != "":
		backend = config.BackendPostgres
	case clickhouseDSN != "":
		backend = config.BackendClickhouse
	default:
		logger.Fatal("either --use-memory, --postgres-dsn, or --clickhouse-dsn is required")
	}

	return &config.Config{
		Storage: config.Storage{
			Backend:       backend,
			PostgresDSN:   postgresDSN,
			ClickhouseDSN: clickhouseDSN,
		},
		Logging: config.Logging{Level: logLevel},
		Backtest: config.Backtest{
			Symbol:         symbol,
			InitialCapital: initialCapital,
			Commission:     commission,
			StartDate:      startDate,
			EndDate:        endDate,
		},
		Strategy: strategy.Config{Type: strings.ToUpper(strategyType)},
	}
}

// openStore connects the configured bar store. The memory backend is seeded
// with generated demo bars so the CLI runs end to end without a database.
func openStore(ctx context.Context, logger *log.Logger, obs *observability.Metrics, cfg *config.Config) (storage.BarStore, func()) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("apply postgres migrations: %v", err)
		}
		return pgstore.NewBarStore(pool), pool.Close

	case config.BackendClickhouse:
		conn, err := chstore.NewConn(ctx, cfg.Storage.ClickhouseDSN)
		if err != nil {
			logger.Fatalf("connect to clickhouse: %v", err)
		}
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			logger.Fatalf("apply clickhouse migrations: %v", err)
		}
		return chstore.NewBarStore(conn), func() { _ = conn.Close() }

	default:
		store := memory.NewBarStore()
		bars := demoBars()
		if err := store.InsertBars(ctx, cfg.Backtest.Symbol, bars); err != nil {
			logger.Fatalf("seed demo bars: %v", err)
		}
		obs.RecordBarsStored(config.BackendMemory, len(bars))
		logger.Printf("Seeded %d demo bars for %s", len(bars), cfg.Backtest.Symbol)
		return store, func() {}
	}
}

// loadSeries fetches the configured bar range and validates it.
func loadSeries(ctx context.Context, logger *log.Logger, obs *observability.Metrics, store storage.BarStore, cfg *config.Config) *domain.Series {
	started := time.Now()

	var (
		bars []domain.PriceBar
		err  error
	)
	if cfg.Backtest.StartDate != "" || cfg.Backtest.EndDate != "" {
		start, end := parseRange(logger, cfg.Backtest.StartDate, cfg.Backtest.EndDate)
		bars, err = store.GetBarsByDateRange(ctx, cfg.Backtest.Symbol, start, end)
	} else {
		bars, err = store.GetBars(ctx, cfg.Backtest.Symbol)
	}
	obs.RecordDBQuery(cfg.Storage.Backend, "get_bars", time.Since(started).Seconds(), err)
	if err != nil {
		logger.Fatalf("load bars for %s: %v", cfg.Backtest.Symbol, err)
	}
	obs.RecordBarsLoaded(cfg.Storage.Backend, len(bars))

	series, err := domain.NewSeries(bars)
	if err != nil {
		logger.Fatalf("validate series: %v", err)
	}
	return series
}

func parseRange(logger *log.Logger, startStr, endStr string) (time.Time, time.Time) {
	start := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2200, time.January, 1, 0, 0, 0, 0, time.UTC)
	var err error
	if startStr != "" {
		if start, err = time.Parse("2006-01-02", startStr); err != nil {
			logger.Fatalf("invalid --start: %v", err)
		}
	}
	if endStr != "" {
		if end, err = time.Parse("2006-01-02", endStr); err != nil {
			logger.Fatalf("invalid --end: %v", err)
		}
	}
	return start, end
}

func serveMetrics(logger *log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	logger.Printf("Serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Printf("metrics server stopped: %v", err)
	}
}

// printResult outputs a human-readable run summary.
func printResult(symbol string, r *domain.BacktestResult, s metrics.Summary) {
	fmt.Println()
	fmt.Println("=== Backtest Result ===")
	fmt.Printf("Symbol:             %s\n", symbol)
	fmt.Printf("Strategy:           %s\n", r.StrategyName)
	fmt.Printf("Initial Capital:    %s\n", r.InitialCapital.StringFixed(2))
	fmt.Printf("Final Capital:      %s\n", r.FinalCapital.StringFixed(2))
	fmt.Printf("Buy & Hold Final:   %s\n", r.BuyHoldFinal.StringFixed(2))
	fmt.Printf("Total P/L:          %s\n", s.TotalProfitLoss.StringFixed(2))
	fmt.Printf("Total Return:       %.2f%%\n", s.TotalReturnPct)
	fmt.Printf("Trades:             %d (%d W / %d L, %.2f%% win rate)\n",
		s.TotalTrades, s.WinningTrades, s.LosingTrades, s.WinRate)
	fmt.Printf("Profit Factor:      %.2f\n", s.ProfitFactor)
	fmt.Printf("Max Drawdown:       %.2f%%\n", s.MaxDrawdownPct)
	fmt.Printf("Sharpe Ratio:       %.2f\n", s.SharpeRatio)
	for _, t := range r.Trades {
		fmt.Printf("  %s -> %s  %d @ %s -> %s  P/L %s (%s%%)\n",
			t.EntryDate.Format("2006-01-02"), t.ExitDate.Format("2006-01-02"),
			t.Shares, t.EntryPrice.StringFixed(2), t.ExitPrice.StringFixed(2),
			t.ProfitLoss.StringFixed(2), t.ReturnPct.StringFixed(2))
	}
}
