package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"adockit/internal/asciidoc"
	"adockit/internal/batch"
	"adockit/internal/config"
	"adockit/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// convert flags
	converterName string
	dryRun        bool
	workers       int
	watchMode     bool

	// table flags
	tableLine int

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adockit",
	Short: "adockit - AsciiDoc callout tooling",
	Long: `adockit converts the callout annotations of AsciiDoc source listings
between layouts: ordered-list, 2-column-table and 3-column-table
explanations in, definition lists, bulleted lists or inline source
comments out. Blocks whose callouts and explanations disagree are
reported and left untouched.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = logging.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// convertCmd converts callouts in the named files
var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert callout explanations in the given AsciiDoc files",
	Long: `Converts every callout-annotated code block in the named files to the
selected layout (--converter deflist|bullets|inline). Blocks that fail
validation are skipped with a warning; the rest of the file still
converts. With --dry-run a diff preview is printed instead of writing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

// tableCmd converts a standalone table to a definition list
var tableCmd = &cobra.Command{
	Use:   "table [file]",
	Short: "Convert the table at --line into a definition list",
	Args:  cobra.ExactArgs(1),
	RunE:  runTable,
}

func runConvert(cmd *cobra.Command, args []string) error {
	name := cfg.Converter
	if converterName != "" {
		name = converterName
	}
	conv, err := asciidoc.NewConverter(name, cfg.Inline.MaxCommentLength, cfg.Inline.Overflow)
	if err != nil {
		return err
	}

	w := cfg.Batch.Workers
	if workers > 0 {
		w = workers
	}
	runner := &batch.Runner{
		Processor: asciidoc.NewProcessor(conv, cfg.SearchWindow, logger),
		Workers:   w,
		DryRun:    dryRun,
		Log:       logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchMode {
		report, err := runner.Run(ctx, args)
		if err != nil {
			return err
		}
		printReport(report)
		if err := runner.Watch(ctx, args); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	report, err := runner.Run(ctx, args)
	if err != nil {
		return err
	}
	printReport(report)
	if report.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", report.Failed)
	}
	return nil
}

func printReport(r *batch.Report) {
	for _, f := range r.Files {
		if f.Err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", f.Err)
			continue
		}
		fmt.Printf("%s: %d converted, %d skipped\n", f.Path, f.Converted, f.Skipped)
		for _, w := range f.Warnings {
			fmt.Printf("  warning: lines %d-%d: %s (code=%v explanations=%v)\n",
				w.StartLine, w.EndLine, w.Reason, w.CodeNums, w.ExplNums)
		}
		if f.Preview != "" {
			fmt.Print(f.Preview)
		}
	}
}

func runTable(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	if tableLine < 1 || tableLine > len(lines) {
		return fmt.Errorf("--line %d out of range (file has %d lines)", tableLine, len(lines))
	}

	repl, from, to, ok := asciidoc.ConvertTableAt(lines, tableLine-1)
	if !ok {
		return fmt.Errorf("no table found at %s:%d", args[0], tableLine)
	}
	logger.Debug("table converted",
		zap.String("file", args[0]),
		zap.Int("from", from+1),
		zap.Int("to", to+1))

	for _, line := range repl {
		fmt.Println(line)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".adockit.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	convertCmd.Flags().StringVarP(&converterName, "converter", "c", "", "output layout: deflist, bullets or inline")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a diff preview instead of writing")
	convertCmd.Flags().IntVar(&workers, "workers", 0, "concurrent file workers (default from config)")
	convertCmd.Flags().BoolVar(&watchMode, "watch", false, "keep running and reconvert on change")

	tableCmd.Flags().IntVar(&tableLine, "line", 1, "1-based line of the |=== delimiter")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tableCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
