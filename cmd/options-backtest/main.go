package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
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
	"equity-options-lab/internal/pricing"
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
	strategyType := flag.String("strategy", strategy.TypeCoveredCall, "Strategy type: "+strings.Join(strategy.OptionsTypes(), ", "))
	initialCapital := flag.Float64("initial-capital", 100000, "Starting account capital")
	riskFreeRate := flag.Float64("risk-free-rate", pricing.DefaultRiskFreeRate, "Annualized risk-free rate for option pricing")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage seeded with generated demo bars")

	// Output
	outputJSON := flag.Bool("json", false, "Output as JSON")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[options-backtest] ", log.LstdFlags)

	cfg := resolveConfig(logger, *configPath, *symbol, *strategyType,
		*initialCapital, *postgresDSN, *clickhouseDSN, *useMemory, *logLevel)

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

	store, cleanup := openStore(ctx, logger, obs, cfg)
	defer cleanup()

	if symbols, err := store.ListSymbols(ctx); err == nil {
		obs.SetSymbolsTracked(len(symbols))
	}

	started := time.Now()
	series, err := storage.LoadSeries(ctx, store, cfg.Backtest.Symbol)
	obs.RecordDBQuery(cfg.Storage.Backend, "get_bars", time.Since(started).Seconds(), err)
	if err != nil {
		logger.Fatalf("load bars for %s: %v", cfg.Backtest.Symbol, err)
	}
	obs.RecordBarsLoaded(cfg.Storage.Backend, series.Len())

	model := pricing.Model{RiskFreeRate: *riskFreeRate}
	strat, err := strategy.OptionsFromConfig(cfg.Strategy, model)
	if err != nil {
		logger.Fatalf("build strategy: %v", err)
	}

	engine, err := backtest.NewOptionsEngine(
		decimal.NewFromFloat(cfg.Backtest.InitialCapital),
		model,
		util.NewLogger(cfg.Logging.Level),
	)
	if err != nil {
		logger.Fatalf("build engine: %v", err)
	}

	runID := idhash.RunID(strat.Name(), cfg.Backtest.StartDate, cfg.Backtest.EndDate,
		decimal.NewFromFloat(cfg.Backtest.InitialCapital).StringFixed(2))
	logger.Printf("Running options backtest: run=%s symbol=%s strategy=%s bars=%d",
		runID, cfg.Backtest.Symbol, strat.Name(), series.Len())

	started = time.Now()
	result, err := engine.Run(ctx, series, strat)
	if err != nil {
		obs.RecordRun("options", "error", time.Since(started).Seconds())
		logger.Fatalf("options backtest failed: %v", err)
	}
	obs.RecordRun("options", "ok", time.Since(started).Seconds())
	obs.RecordTrades("options", len(result.Trades), series.Len())
	obs.RecordSignals(strat.Name(), len(result.Trades))

	summary := metrics.ComputeOptions(result)

	// Output result
	if *outputJSON {
		output, _ := json.MarshalIndent(struct {
			RunID   string                        `json:"run_id"`
			Symbol  string                        `json:"symbol"`
			Result  *domain.OptionsBacktestResult `json:"result"`
			Summary metrics.Summary               `json:"summary"`
		}{runID, cfg.Backtest.Symbol, result, summary}, "", "  ")
		fmt.Println(string(output))
	} else {
		printResult(cfg.Backtest.Symbol, result, summary)
	}
}

func resolveConfig(
	logger *log.Logger,
	configPath, symbol, strategyType string,
	initialCapital float64,
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
		},
		Strategy: strategy.Config{Type: strings.ToUpper(strategyType)},
	}
}

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

// printResult outputs a human-readable run summary.
func printResult(symbol string, r *domain.OptionsBacktestResult, s metrics.Summary) {
	fmt.Println()
	fmt.Println("=== Options Backtest Result ===")
	fmt.Printf("Symbol:             %s\n", symbol)
	fmt.Printf("Strategy:           %s\n", r.StrategyName)
	fmt.Printf("Initial Capital:    %s\n", r.InitialCapital.StringFixed(2))
	fmt.Printf("Final Capital:      %s\n", r.FinalCapital.StringFixed(2))
	fmt.Printf("Total P/L:          %s\n", s.TotalProfitLoss.StringFixed(2))
	fmt.Printf("Total Return:       %.2f%%\n", s.TotalReturnPct)
	fmt.Printf("Trades:             %d (%d W / %d L, %.2f%% win rate)\n",
		s.TotalTrades, s.WinningTrades, s.LosingTrades, s.WinRate)
	fmt.Printf("Profit Factor:      %.2f\n", s.ProfitFactor)
	fmt.Printf("Max Drawdown:       %.2f%%\n", s.MaxDrawdownPct)
	fmt.Printf("Sharpe Ratio:       %.2f\n", s.SharpeRatio)
	for _, t := range r.Trades {
		fmt.Printf("  %s -> %s  %s %s x%d strike %s  prem %s -> %s  %s  P/L %s\n",
			t.EntryDate.Format("2006-01-02"), t.ExitDate.Format("2006-01-02"),
			t.Direction, t.Type, t.Contracts, t.Strike.StringFixed(2),
			t.EntryPremium.StringFixed(4), t.ExitPremium.StringFixed(4),
			t.Status, t.ProfitLoss.StringFixed(2))
	}
}
