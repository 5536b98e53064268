package cmd

import (
	"fmt"
	"strings"

	"gokwh/output"
	"gokwh/storage"

	"github.com/spf13/cobra"
)

var (
	exportMeterID int64
	exportMode    string
	exportFormat  string
	exportOutput  string
	exportDBPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored consumption profiles to CSV/Excel",
	Long: `Export the stored profiles of one meter.

Modes:
- daily: one row per day (totals, peak, 24 hourly averages)
- monthly: one row per month (totals, distinct days, daily average)

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export daily profiles to CSV
  gokwh export --meter 3 --mode daily --db ./gokwh.db --output ./daily.csv

  # Export monthly profiles to Excel
  gokwh export --meter 3 --mode monthly --db ./gokwh.db --output ./monthly.xlsx

  # Force Excel format independent of extension
  gokwh export --meter 3 --mode daily --format excel --db ./gokwh.db --output ./daily.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := store.FindMeterByID(exportMeterID); err != nil {
			return err
		}

		switch strings.TrimSpace(strings.ToLower(exportMode)) {
		case "", "daily":
			profiles, err := store.LoadDailyProfiles(exportMeterID)
			if err != nil {
				return err
			}
			if err := output.WriteDailyProfiles(exportOutput, exportFormat, profiles); err != nil {
				return err
			}
			fmt.Printf("Export completed. Days: %d, Mode: daily, File: %s\n", len(profiles), exportOutput)
		case "monthly":
			profiles, err := store.LoadMonthlyProfiles(exportMeterID)
			if err != nil {
				return err
			}
			if err := output.WriteMonthlyProfiles(exportOutput, exportFormat, profiles); err != nil {
				return err
			}
			fmt.Printf("Export completed. Months: %d, Mode: monthly, File: %s\n", len(profiles), exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: daily, monthly)", exportMode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Int64Var(&exportMeterID, "meter", 0, "Meter id to export")
	exportCmd.Flags().StringVar(&exportMode, "mode", "daily", "Export mode: daily|monthly")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./gokwh.db", "Path to local SQLite registry")

	_ = exportCmd.MarkFlagRequired("meter")
	_ = exportCmd.MarkFlagRequired("output")
}
