package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"texas-market-sim/charts"
	"texas-market-sim/config"
	"texas-market-sim/regions"
	"texas-market-sim/services"
	"texas-market-sim/storage"
	"texas-market-sim/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger().Error("[config] %v", err)
		return 1
	}

	region := flag.String("region", "", "region name to generate")
	choice := flag.String("choice", "", "menu number of the region to generate")
	all := flag.Bool("all", false, "generate every known region")
	list := flag.String("regions", "", "comma-separated region names to generate")
	seed := flag.Uint64("seed", cfg.Seed, "noise seed")
	start := flag.Int("start", cfg.StartYear, "first year")
	end := flag.Int("end", cfg.EndYear, "last year")
	out := flag.String("out", cfg.OutputDir, "output directory")
	noCharts := flag.Bool("no-charts", false, "skip chart rendering")
	flag.Parse()

	cfg.Seed, cfg.StartYear, cfg.EndYear, cfg.OutputDir = *seed, *start, *end, *out
	if *noCharts {
		cfg.RenderCharts = false
	}

	logger, err := utils.NewLoggerWithLevel(cfg.LogLevel, cfg.Env)
	if err != nil {
		utils.NewLogger().Error("[logger] %v", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Error("[config] %v", err)
		return 1
	}

	catalog, err := regions.LoadCatalog(cfg.RegionsFile)
	if err != nil {
		logger.Error("[regions] %v", err)
		return 1
	}

	var names []string
	switch {
	case *all:
		names = catalog.Names()
	case *list != "":
		for _, n := range strings.Split(*list, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	case *region != "":
		names = []string{*region}
	case *choice != "":
		names = []string{selectRegion(catalog, *choice, logger)}
	default:
		names = []string{promptRegion(catalog, logger)}
	}

	logger.Info("=== Texas Market Simulator starting ===")
	logger.Info("Config: regions: %s | years: %d-%d | seed: %d | output: %s",
		strings.Join(names, ", "), cfg.StartYear, cfg.EndYear, cfg.Seed, cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}

	var sink storage.SeriesWriter
	if cfg.PostgresEnabled {
		connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
		pg, err := storage.NewPostgresWriter(connectCtx, cfg.DSN(), retry)
		cancel()
		if err != nil {
			logger.Error("[postgres] %v", err)
			logger.Error("[postgres] Continuing without the database sink")
		} else {
			sink = pg
			defer pg.Close()
		}
	}

	var printer *charts.PDFPrinter
	if cfg.PDFReport {
		printer = charts.NewPDFPrinter(cfg.ChromeBin, retry, logger)
	}

	pipeline := services.NewPipeline(services.PipelineOptions{
		OutputDir:    cfg.OutputDir,
		WriteXLSX:    cfg.WriteXLSX,
		RenderCharts: cfg.RenderCharts,
		ChartEach:    cfg.ChartEach,
		PDFReport:    cfg.PDFReport,
	}, logger, charts.NewRenderer(logger), printer, sink)

	batch := services.NewBatchService(catalog, cfg.MaxConcurrency, cfg.BatchRateLimitMs, logger)
	results := batch.Run(names, cfg.StartYear, cfg.EndYear, cfg.Seed)

	exit := 0
	for _, res := range results {
		outputs, report, err := pipeline.Process(ctx, res.Name, res.Profile, res.Series)
		if err != nil {
			logger.Error("[export] %s: %v", res.Name, err)
			exit = 1
			continue
		}

		fmt.Printf("\n  Data preview: %s\n", res.Name)
		if err := services.PrintPreview(os.Stdout, res.Series, 5); err != nil {
			logger.Warn("[preview] %v", err)
		}
		pipeline.Insights().Print(report)

		fmt.Printf("  Done. Data → %s", outputs.CSV)
		if outputs.XLSX != "" {
			fmt.Printf(" | %s", outputs.XLSX)
		}
		if outputs.Dashboard != "" {
			fmt.Printf(" | Charts → %s", outputs.Dashboard)
		}
		if outputs.PDF != "" {
			fmt.Printf(" | Report → %s", outputs.PDF)
		}
		fmt.Print("\n\n")
	}
	return exit
}

func selectRegion(catalog *regions.Catalog, input string, logger *utils.Logger) string {
	name, ok := catalog.Select(input)
	if !ok {
		logger.Warn("[regions] Invalid choice %q. Defaulting to %s.", input, name)
	}
	return name
}

func promptRegion(catalog *regions.Catalog, logger *utils.Logger) string {
	fmt.Println("🤠 TEXAS REAL ESTATE ANALYSIS - MAJOR REGIONS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("Available regions:")
	for i, name := range catalog.Names() {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	fmt.Print("\nSelect the region number to analyze: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		logger.Warn("[regions] No input read: %v", err)
	}
	return selectRegion(catalog, line, logger)
}
