package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gowoe/adapters/excel"
	"gowoe/adapters/postgres"
	"gowoe/adapters/render"
	"gowoe/adapters/tree"
	"gowoe/app"
	"gowoe/domain/core"
	"gowoe/domain/table"
	"gowoe/internal/analysis"
	"gowoe/internal/api"
	"gowoe/internal/config"
	"gowoe/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env file if present (ignore error for production environments)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "woe",
		Short: "WOE/IV scorecard binning and statistics engine",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newEncodeCmd(),
		newDescribeCmd(),
		newServeCmd(),
		newDemoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serviceFromConfig builds the scorecard service from environment config
func serviceFromConfig(cfg *config.Config) *app.ScorecardService {
	return app.NewScorecardService(tree.NewLearner(), app.ScorecardConfig{
		MinLeafFraction:     cfg.Analysis.MinLeafFraction,
		ComplexityThreshold: cfg.Analysis.ComplexityThreshold,
		ContinueOnError:     cfg.Analysis.ContinueOnError,
		Parallelism:         cfg.Analysis.Parallelism,
	})
}

// loadTable resolves the observation table from a file path or, when
// --query is set, from Postgres
func loadTable(ctx context.Context, cfg *config.Config, file, query string) (*table.Table, error) {
	if query != "" {
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("--query requires DATABASE_URL")
		}
		src, err := postgres.Open(cfg.Database.URL, query)
		if err != nil {
			return nil, err
		}
		return src.Load(ctx)
	}
	if file == "" {
		file = cfg.Data.File
	}
	if file == "" {
		return nil, fmt.Errorf("no data source: pass a file argument, --query, or set DATA_FILE")
	}
	return excel.NewDataReader(file).Load(ctx)
}

func newAnalyzeCmd() *cobra.Command {
	var outcome string
	var variables []string
	var query string
	var format string
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "analyze [data-file]",
		Short: "Fit WOE tables and the IV summary for a dataset",
		Long: `Fit one weight-of-evidence table per predictor against a binary outcome
and rank the predictors by information value.

Without --var flags the scope defaults to every categorical column;
numeric predictors must be named explicitly.

Example: woe analyze applicants.xlsx --outcome outcome --var checking_status --var duration_months`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if continueOnError {
				cfg.Analysis.ContinueOnError = true
			}

			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			tbl, err := loadTable(cmd.Context(), cfg, file, query)
			if err != nil {
				return err
			}

			keys := make([]core.VariableKey, len(variables))
			for i, v := range variables {
				keys[i] = core.VariableKey(v)
			}

			result, err := serviceFromConfig(cfg).Analyze(cmd.Context(), tbl, core.VariableKey(outcome), keys)
			if err != nil {
				return err
			}
			return writeResult(cmd, format, result)
		},
	}

	cmd.Flags().StringVar(&outcome, "outcome", "outcome", "Binary outcome column")
	cmd.Flags().StringArrayVar(&variables, "var", nil, "Predictor to analyze (repeatable; default: all categorical columns)")
	cmd.Flags().StringVar(&query, "query", "", "Load the dataset from this SQL query instead of a file (needs DATABASE_URL)")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown, html or json")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Collect per-variable failures instead of aborting the run")

	return cmd
}

func newEncodeCmd() *cobra.Command {
	var outcome string
	var variables []string
	var query string
	var out string

	cmd := &cobra.Command{
		Use:   "encode [data-file]",
		Short: "Fit WOE tables and append <variable>_woe columns",
		Long: `Fit WOE tables exactly as "analyze" does, then apply them back to the
dataset, appending one numeric <variable>_woe column per predictor. The
encoded table is written as CSV.

Example: woe encode applicants.csv --outcome outcome --var purpose --out encoded.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			tbl, err := loadTable(cmd.Context(), cfg, file, query)
			if err != nil {
				return err
			}

			keys := make([]core.VariableKey, len(variables))
			for i, v := range variables {
				keys[i] = core.VariableKey(v)
			}

			svc := serviceFromConfig(cfg)
			result, err := svc.Analyze(cmd.Context(), tbl, core.VariableKey(outcome), keys)
			if err != nil {
				return err
			}
			encoded, err := svc.Encode(tbl, result.Tables)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeCSV(w, encoded)
		},
	}

	cmd.Flags().StringVar(&outcome, "outcome", "outcome", "Binary outcome column")
	cmd.Flags().StringArrayVar(&variables, "var", nil, "Predictor to encode (repeatable; default: all categorical columns)")
	cmd.Flags().StringVar(&query, "query", "", "Load the dataset from this SQL query instead of a file (needs DATABASE_URL)")
	cmd.Flags().StringVar(&out, "out", "", "Write the encoded CSV here instead of stdout")

	return cmd
}

func newDescribeCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "describe [data-file]",
		Short: "Print per-column summary statistics as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			tbl, err := loadTable(cmd.Context(), cfg, file, query)
			if err != nil {
				return err
			}

			profiles := analysis.ProfileTable(tbl)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(profiles)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Load the dataset from this SQL query instead of a file (needs DATABASE_URL)")

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return api.NewServer(serviceFromConfig(cfg), cfg).Run()
		},
	}
}

func newDemoCmd() *cobra.Command {
	var rows int
	var seed int64
	var format string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the analysis on a deterministic synthetic credit dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			gen := testkit.NewCreditDataGenerator(testkit.CreditGeneratorConfig{Rows: rows, Seed: seed})
			tbl := gen.Generate()

			variables := []core.VariableKey{
				"checking_status", "purpose", "housing",
				"duration_months", "credit_amount", "age",
			}
			result, err := serviceFromConfig(cfg).Analyze(cmd.Context(), tbl, "outcome", variables)
			if err != nil {
				return err
			}
			return writeResult(cmd, format, result)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 1000, "Number of synthetic applicants")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic generation")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown, html or json")

	return cmd
}

func writeResult(cmd *cobra.Command, format string, result *app.ScorecardResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "markdown", "html":
		report, err := render.NewMarkdownRenderer().RenderReport(result.Summary, result.Tables)
		if err != nil {
			return err
		}
		if format == "html" {
			report = render.ToHTML(report)
		}
		_, err = cmd.OutOrStdout().Write(report)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeCSV emits the table with numeric cells in their shortest
// round-trip representation
func writeCSV(w io.Writer, tbl *table.Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(tbl.Columns))
	for i := range tbl.Columns {
		header[i] = string(tbl.Columns[i].Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(tbl.Columns))
	for r := 0; r < tbl.RowCount(); r++ {
		for c := range tbl.Columns {
			col := &tbl.Columns[c]
			if col.Kind == table.KindNumeric {
				record[c] = strconv.FormatFloat(col.Floats[r], 'g', -1, 64)
			} else {
				record[c] = col.Strings[r]
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
