package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/ndvistat/internal/analysis"
	"github.com/KaramelBytes/ndvistat/internal/chart"
	cfgpkg "github.com/KaramelBytes/ndvistat/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ndvistat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_path: %s\n", c.InputPath)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "chart_format: %s\n", c.ChartFormat)
		fmt.Fprintf(out, "charts: %t\n", c.Charts)
		fmt.Fprintf(out, "workbook: %t\n", c.Workbook)
		fmt.Fprintf(out, "boundary: %s\n", c.Boundary)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		switch key {
		case "input_path":
			c.InputPath = val
		case "output_dir":
			c.OutputDir = val
		case "chart_format":
			f, err := chart.ParseFormat(val)
			if err != nil {
				return err
			}
			c.ChartFormat = f
		case "charts":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for charts: %w", err)
			}
			c.Charts = b
		case "workbook":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for workbook: %w", err)
			}
			c.Workbook = b
		case "boundary":
			b, err := analysis.ParseBoundary(val)
			if err != nil {
				return err
			}
			c.Boundary = b.String()
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
