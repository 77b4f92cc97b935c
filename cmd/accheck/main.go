package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"accheck/internal/config"
	"accheck/internal/dataset"
	"accheck/internal/dedup"
	"accheck/internal/exporter"
	"accheck/internal/infrastructure"
	"accheck/internal/services"
)

func main() {
	in := flag.String("in", "", "path to the input CSV or xlsx file")
	out := flag.String("out", "", "output csv file path for duplicate records (defaults to data/reports/duplicates.csv)")
	field := flag.String("field", "", "name of the column to check for duplicates")
	bom := flag.Bool("bom", true, "prefix the output CSV with a UTF-8 BOM for Excel")
	flag.Parse()

	if *in == "" || *field == "" {
		fmt.Fprintln(os.Stderr, "Usage: accheck -in <file> -field <column> [-out <file>] [-bom=false]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		*out = paths.GetReportPath("duplicates.csv")
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	// CLI logs go to file only; stdout carries the report
	cfg.Logging.Output = "file"
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("accheck.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting duplicate check",
		slog.String("input_file", *in),
		slog.String("output_file", *out),
		slog.String("field", *field))

	svc := services.NewCheckService(
		dataset.NewLoader(logger),
		dedup.NewSelector(logger),
		exporter.NewReportExporter(exporter.NewCSVWriter(paths), logger),
		logger,
	)

	os.Exit(runCheck(context.Background(), svc, os.Stdout, checkArgs{
		Input:  *in,
		Output: *out,
		Field:  *field,
		BOM:    *bom,
	}))
}

// checkArgs carries the resolved CLI arguments
type checkArgs struct {
	Input  string
	Output string
	Field  string
	BOM    bool
}

// runCheck executes the duplicate check and prints the report to w.
// Returns the process exit code.
func runCheck(ctx context.Context, svc *services.CheckService, w io.Writer, args checkArgs) int {
	summary, err := svc.CheckFile(ctx, services.CheckRequest{
		InputPath:  args.Input,
		OutputPath: args.Output,
		Field:      args.Field,
		BOM:        args.BOM,
	})
	if err != nil {
		printError(w, err, args)
		return 1
	}

	if summary.ImpactedCount == 0 {
		fmt.Fprintf(w, "No duplicate '%s' values found after trimming spaces.\n", args.Field)
	} else {
		fmt.Fprintf(w, "Duplicate records based on '%s' (after trimming) have been saved to '%s'\n",
			args.Field, args.Output)
	}

	printSummary(w, args, fmt.Sprintf("%d", summary.TotalProcessed), fmt.Sprintf("%d", summary.ImpactedCount))
	return 0
}

// printError writes the failure message and the aborted summary block
func printError(w io.Writer, err error, args checkArgs) {
	switch {
	case errors.Is(err, dataset.ErrFileNotFound):
		fmt.Fprintf(w, "Error: Input file '%s' not found.\n", args.Input)
	case errors.Is(err, dataset.ErrMissingHeader):
		fmt.Fprintf(w, "Error: Input file '%s' does not appear to have a header row.\n", args.Input)
		fmt.Fprintln(w, "A header row is required to identify the column to check for duplicates.")
		printSummary(w, args, "N/A (Header missing)", "0 (Processing aborted)")
	case errors.Is(err, dataset.ErrFieldNotFound):
		fmt.Fprintf(w, "Error: Column '%s' not found in '%s'.\n", args.Field, args.Input)
		printSummary(w, args, "N/A", "0 (Specified field not found)")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// printSummary writes the closing summary block
func printSummary(w io.Writer, args checkArgs, total, impacted string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Summary Report ---")
	fmt.Fprintf(w, "Input Filename         : %s\n", args.Input)
	fmt.Fprintf(w, "Target Field for Duplicates: %s\n", args.Field)
	fmt.Fprintf(w, "Total Records Processed: %s\n", total)
	fmt.Fprintf(w, "Impacted Records (Duplicates Found): %s\n", impacted)
}
