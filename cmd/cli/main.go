package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"solareda/adapters/loader"
	"solareda/adapters/report"
	"solareda/api"
	"solareda/internal/cleaning"
	"solareda/internal/config"
	"solareda/internal/profiling"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "solareda",
		Short: "EDA toolkit for solar irradiance measurement datasets",
	}

	rootCmd.AddCommand(
		newDatasetsCmd(),
		newProfileCmd(),
		newEDACmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List available datasets in the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ld := loader.NewLoader(cfg.Data.BaseDir)
			datasets, err := ld.ListDatasets()
			if err != nil {
				return err
			}
			fmt.Println("Available datasets:")
			for _, info := range datasets {
				fmt.Printf("  - %s: %s\n", info.Name, info.Filename)
			}
			return nil
		},
	}
}

func newProfileCmd() *cobra.Command {
	var columns []string
	var threshold float64
	var excelOut string

	cmd := &cobra.Command{
		Use:   "profile [dataset]",
		Short: "Profile a dataset: missing values, summary statistics, outliers",
		Long: `Profile a dataset by name fragment.

Example: solareda profile benin --columns GHI,DNI,DHI --threshold 3.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(args[0], columns, threshold, excelOut)
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns for outlier analysis (default: all numeric)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Z-score outlier threshold (default from config)")
	cmd.Flags().StringVar(&excelOut, "excel", "", "Write the report to an XLSX workbook at this path")
	return cmd
}

func newEDACmd() *cobra.Command {
	var columns []string
	var threshold float64
	var fill string
	var skipCleaning bool

	cmd := &cobra.Command{
		Use:   "eda [dataset]",
		Short: "Clean a dataset and save the result as <stem>_clean.csv",
		Long: `Run the cleaning pipeline on a dataset: impute missing values, drop
Z-score outliers, write the cleaned CSV next to the original.

Example: solareda eda togo --fill median --threshold 3.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEDA(args[0], columns, threshold, fill, skipCleaning)
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to clean (default: all numeric)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Z-score outlier threshold (default from config)")
	cmd.Flags().StringVar(&fill, "fill", "", "Fill strategy: median|mean (default from config)")
	cmd.Flags().BoolVar(&skipCleaning, "skip-cleaning", false, "Load and report only, do not clean or save")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON report API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			app := api.NewApp(cfg)
			return app.Start(cfg.Server.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from config)")
	return cmd
}

func runProfile(name string, columns []string, threshold float64, excelOut string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if threshold == 0 {
		threshold = cfg.Data.OutlierThreshold
	}

	ld := loader.NewLoader(cfg.Data.BaseDir)
	info, err := ld.FindDataset(name)
	if err != nil {
		return err
	}
	frame, err := ld.Load(info.Filename)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Printf("Profiling Dataset: %s\n", info.Filename)
	fmt.Printf("%s\n\n", strings.Repeat("=", 60))

	quality := profiling.BuildQualityReport(frame, cfg.Data.MissingThreshold)

	fmt.Println("1. DATA QUALITY")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Shape: %d rows x %d columns\n", quality.Rows, quality.Columns)
	fmt.Printf("Numeric columns: %s\n", strings.Join(quality.NumericColumns, ", "))
	fmt.Printf("Duplicate rows: %d\n", quality.DuplicateRows)

	fmt.Println("\n2. MISSING VALUES")
	fmt.Println(strings.Repeat("-", 60))
	for _, m := range quality.Missing {
		flag := ""
		if m.HighMissing {
			flag = "  <-- high"
		}
		fmt.Printf("%-20s %8d  %6.2f%%%s\n", m.Column, m.MissingCount, m.MissingPct, flag)
	}
	if high := quality.HighMissingColumns(); len(high) > 0 {
		fmt.Printf("\nWarning: %d columns exceed the %.0f%% missing threshold\n",
			len(high), cfg.Data.MissingThreshold*100)
	}

	fmt.Println("\n3. SUMMARY STATISTICS")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-14s %8s %10s %10s %10s %10s\n", "Column", "Count", "Mean", "StdDev", "Min", "Max")
	for _, s := range quality.Summary {
		fmt.Printf("%-14s %8d %10.2f %10.2f %10.2f %10.2f\n",
			s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
	}

	fmt.Println("\n4. OUTLIER DETECTION")
	fmt.Println(strings.Repeat("-", 60))
	outliers, err := cleaning.DetectOutliers(frame, columns, threshold)
	if err != nil {
		return err
	}
	fmt.Printf("Outliers detected: %d rows (%.2f%%)\n",
		outliers.Count, float64(outliers.Count)/float64(frame.NumRows())*100)
	fmt.Printf("Columns analyzed: %s\n", strings.Join(outliers.ColumnsAnalyzed, ", "))

	if excelOut != "" {
		writer := report.NewExcelWriter()
		if err := writer.WriteQualityWorkbook(excelOut, quality, outliers); err != nil {
			return err
		}
		fmt.Printf("\nReport workbook saved to: %s\n", excelOut)
	}

	fmt.Println("\nProfiling complete.")
	return nil
}

func runEDA(name string, columns []string, threshold float64, fill string, skipCleaning bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if threshold == 0 {
		threshold = cfg.Data.OutlierThreshold
	}
	if fill == "" {
		fill = cfg.Data.FillStrategy
	}
	strategy, err := cleaning.ParseFillStrategy(fill)
	if err != nil {
		return err
	}

	ld := loader.NewLoader(cfg.Data.BaseDir)
	info, err := ld.FindDataset(name)
	if err != nil {
		return err
	}
	frame, err := ld.Load(info.Filename)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Printf("Running EDA on: %s\n", info.Filename)
	fmt.Printf("%s\n\n", strings.Repeat("=", 60))

	if skipCleaning {
		fmt.Println("Skipping data cleaning...")
		quality := profiling.BuildQualityReport(frame, cfg.Data.MissingThreshold)
		fmt.Printf("Shape: %d rows x %d columns, %d numeric columns\n",
			quality.Rows, quality.Columns, len(quality.NumericColumns))
		return nil
	}

	cleaned, rep, err := cleaning.Clean(frame, cleaning.Options{
		Columns:   columns,
		Strategy:  strategy,
		Threshold: threshold,
	})
	if err != nil {
		return err
	}

	path, err := ld.SaveCleaned(cleaned, info.Filename)
	if err != nil {
		return err
	}

	fmt.Printf("Cleaned dataset: %d rows (removed %d outliers)\n", rep.OutputRows, rep.RowsRemoved)
	fmt.Printf("Missing values filled: %d (%s)\n", rep.Imputation.TotalFilled, rep.Imputation.Strategy)
	for _, f := range rep.Imputation.Fills {
		if f.FilledCount > 0 {
			fmt.Printf("  %s: %d filled with %.4f\n", f.Column, f.FilledCount, f.FillValue)
		}
	}
	fmt.Printf("Saved cleaned data to: %s\n", path)
	return nil
}
