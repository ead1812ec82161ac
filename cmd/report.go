package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/ndvistat/internal/analysis"
	"github.com/KaramelBytes/ndvistat/internal/chart"
	"github.com/KaramelBytes/ndvistat/internal/dataset"
	"github.com/KaramelBytes/ndvistat/internal/report"
	"github.com/KaramelBytes/ndvistat/internal/utils"
	"github.com/spf13/cobra"
)

var (
	repOutputDir string
	repFormat    string
	repNoCharts  bool
	repWorkbook  bool
	repBoundary  string
	repOutput    string
)

var reportCmd = &cobra.Command{
	Use:   "report [file|dir]",
	Short: "Print NDVI statistics and write charts for a CSV export",
	Long: `Reads the ndvi column of a CSV file (or the newest *_ndvi.csv in a directory),
prints descriptive statistics, band distribution and IQR outliers, and writes the
overview and band charts to the output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		input := c.InputPath
		if len(args) == 1 {
			input = args[0]
		}
		outDir := c.OutputDir
		if f.Changed("output-dir") {
			outDir = repOutputDir
		}
		format := c.ChartFormat
		if f.Changed("format") {
			format = repFormat
		}
		charts := c.Charts && !repNoCharts
		workbook := c.Workbook
		if f.Changed("workbook") {
			workbook = repWorkbook
		}
		boundaryName := c.Boundary
		if f.Changed("boundary") {
			boundaryName = repBoundary
		}
		boundary, err := analysis.ParseBoundary(boundaryName)
		if err != nil {
			return err
		}
		if charts {
			if format, err = chart.ParseFormat(format); err != nil {
				return err
			}
		}

		path, err := dataset.ResolveInput(input)
		if err != nil {
			return err
		}
		ds, err := dataset.Load(path)
		if err != nil {
			return err
		}
		logger.Debug("loaded dataset", "path", path, "rows", ds.Len(), "missing", ds.Missing())

		rep, err := report.Build(ds, report.Options{Boundary: boundary})
		if err != nil {
			return err
		}
		logger.Debug("computed statistics", "count", rep.Summary.Count, "outliers", rep.Outliers.Count, "boundary", boundary.String())

		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		m := report.NewManifest(outDir, path, rep)

		if charts {
			p := utils.ArtifactPath(outDir, "ndvi_overview", format)
			if err := chart.Overview(p, rep.Values()); err != nil {
				return fmt.Errorf("overview chart: %w", err)
			}
			m.Add("overview", p)
			logger.Info("wrote chart", "path", p)
		}

		text := rep.Text()
		fmt.Fprint(cmd.OutOrStdout(), text)

		if charts {
			p := utils.ArtifactPath(outDir, "ndvi_distribution", format)
			if err := chart.Distribution(p, rep.Distribution); err != nil {
				return fmt.Errorf("distribution chart: %w", err)
			}
			m.Add("distribution", p)
			logger.Info("wrote chart", "path", p)
		}
		if workbook {
			p := utils.ArtifactPath(outDir, "ndvi_report", "xlsx")
			if err := rep.WriteWorkbook(p); err != nil {
				return err
			}
			m.Add("workbook", p)
			logger.Info("wrote workbook", "path", p)
		}
		if repOutput != "" {
			if err := os.WriteFile(repOutput, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			m.Add("report", repOutput)
			logger.Info("wrote report", "path", repOutput)
		}
		if err := m.Save(); err != nil {
			return fmt.Errorf("save manifest: %w", err)
		}
		logger.Debug("saved manifest", "id", m.ID, "dir", m.RootDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&repOutputDir, "output-dir", "", "directory for charts, workbook and run.json (overrides config)")
	reportCmd.Flags().StringVar(&repFormat, "format", "", "chart format: png|svg|pdf (overrides config)")
	reportCmd.Flags().BoolVar(&repNoCharts, "no-charts", false, "skip chart rendering")
	reportCmd.Flags().BoolVar(&repWorkbook, "workbook", false, "also export an xlsx workbook")
	reportCmd.Flags().StringVar(&repBoundary, "boundary", "", "band edge convention: right (a,b] | left [a,b)")
	reportCmd.Flags().StringVarP(&repOutput, "output", "o", "", "optional path to also write the text report")
}
