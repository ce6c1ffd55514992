package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/insightdelivered/statement-kpi-extractor/internal/analyzer"
	"github.com/insightdelivered/statement-kpi-extractor/internal/api"
	"github.com/insightdelivered/statement-kpi-extractor/internal/common"
	"github.com/insightdelivered/statement-kpi-extractor/internal/extractor"
	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/insightdelivered/statement-kpi-extractor/internal/registry"
	"github.com/insightdelivered/statement-kpi-extractor/internal/writer"
	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"
)

const version = "1.0.0"

func main() {
	// CLI flags
	balanceFlag := flag.String("balance", "", "Balance sheet file (optional; enables financial ratios)")
	formatFlag := flag.String("format", "text", "Output format: text or json")
	outputFlag := flag.String("output", "", "Output file path (defaults to stdout)")
	configFlag := flag.String("config", "", "TOML configuration file")
	detailsFlag := flag.Bool("details", false, "Include detail breakdowns in the text summary")
	serveFlag := flag.Bool("serve", false, "Start the HTTP upload API instead of processing files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Financial Statement KPI Extractor
by Insight Delivered

Extracts standard KPIs from Spanish Profit & Loss (PyG) spreadsheet exports
and, when a balance sheet is supplied, computes financial ratios.

Usage:
  kpi-extractor [flags] <pyg-file>
  kpi-extractor [flags] <file> <file>
  kpi-extractor -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Profit and loss summary
  kpi-extractor pyg.xlsx

  # With balance sheet, as JSON
  kpi-extractor -balance=balance.xlsx -format=json -output=analysis.json pyg.xlsx

  # Two files, statement types detected from their content
  kpi-extractor balance.xls pyg.csv

  # HTTP API
  kpi-extractor -serve -config=kpi-extractor.toml

Supported Formats:
  .xlsx, .xls, .csv (';' or ',' delimited, UTF-8 or Windows-1252)
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("kpi-extractor v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || (!*serveFlag && flag.NArg() == 0) {
		flag.Usage()
		os.Exit(0)
	}

	if _, err := writer.New(*formatFlag, false); err != nil {
		fatalf("%v\n", err)
	}

	// .env is optional
	_ = godotenv.Load()

	config, err := common.LoadFromFile(*configFlag)
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}
	logger := common.InitLogger(config)

	reg, err := registry.Load(config.Registry.Path)
	if err != nil {
		fatalf("Registry error: %v\n", err)
	}
	reader, err := extractor.NewReader(config.CSV.FallbackCharset)
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}
	a := analyzer.New(reg, reader, logger)

	if *serveFlag {
		if err := serve(config, a, logger); err != nil {
			fatalf("Server error: %v\n", err)
		}
		return
	}

	if flag.NArg() > 2 || (flag.NArg() == 2 && *balanceFlag != "") {
		fatalf("Expected one profit and loss file and at most one balance sheet\n")
	}

	pyg, balance, err := resolveDocuments(a, flag.Args(), *balanceFlag)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	if err := run(a, pyg, balance, *formatFlag, *outputFlag, *detailsFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", pyg.Name, err)
		os.Exit(1)
	}
}

func serve(config *common.Config, a *analyzer.Analyzer, logger arbor.ILogger) error {
	app := api.NewApp(api.NewHandler(a, logger, version), config.Server.BodyLimitMB)
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	logger.Info().Str("address", addr).Str("version", version).Msg("Starting HTTP server")
	return app.Listen(addr)
}

// resolveDocuments reads the input files. With two positional files and no
// -balance flag, each file's statement type is detected from its content.
func resolveDocuments(a *analyzer.Analyzer, args []string, balancePath string) (analyzer.Document, *analyzer.Document, error) {
	first, err := readDocument(args[0])
	if err != nil {
		return analyzer.Document{}, nil, err
	}

	if balancePath != "" {
		bal, err := readDocument(balancePath)
		if err != nil {
			return analyzer.Document{}, nil, err
		}
		return first, &bal, nil
	}
	if len(args) == 1 {
		return first, nil, nil
	}

	second, err := readDocument(args[1])
	if err != nil {
		return analyzer.Document{}, nil, err
	}
	kind, err := a.Classify(first)
	if err != nil {
		return analyzer.Document{}, nil, fmt.Errorf("could not classify %s: %w", first.Name, err)
	}
	fmt.Fprintf(os.Stderr, "  Detected %s as %s\n", first.Name, describe(kind))
	if kind == models.StatementBalance {
		return second, &first, nil
	}
	return first, &second, nil
}

func readDocument(path string) (analyzer.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return analyzer.Document{}, fmt.Errorf("input file not found: %s", path)
		}
		return analyzer.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return analyzer.Document{Name: path, Data: data}, nil
}

func run(a *analyzer.Analyzer, pyg analyzer.Document, balance *analyzer.Document, format, outputPath string, details bool) error {
	fmt.Fprintf(os.Stderr, "Processing: %s\n", pyg.Name)
	if balance != nil {
		fmt.Fprintf(os.Stderr, "  Balance sheet: %s\n", balance.Name)
	}

	result, err := a.Analyze(pyg, balance)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "  Years: %s\n", strings.Join(result.Years, ", "))
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "  Warning: %s\n", warning)
	}

	w, err := writer.New(format, details)
	if err != nil {
		return err
	}

	if outputPath != "" {
		err = w.WriteToFile(outputPath, result)
	} else {
		err = w.Write(os.Stdout, result)
	}
	if err != nil {
		return err
	}

	if outputPath != "" {
		fmt.Fprintf(os.Stderr, "  Output: %s\n", outputPath)
	}
	fmt.Fprintln(os.Stderr, "  Done.")
	return nil
}

func describe(kind models.StatementKind) string {
	if kind == models.StatementBalance {
		return "balance sheet"
	}
	return "profit and loss"
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
