package cmd

import (
	"fmt"
	"strings"

	"gokwh/config"
	"gokwh/importer"
	"gokwh/storage"

	"github.com/spf13/cobra"
)

var (
	importInputs        []string
	importDBPath        string
	importMeterID       int64
	importSite          string
	importCreateMissing bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import meter export files into the local SQLite registry",
	Long: `Read export files, detect their layout, build consumption profiles, and persist
the results per meter in SQLite.

Each file is routed to a meter in this order:
- an explicit --meter flag, which bypasses routing entirely,
- a matching rules[] file_template from configuration,
- fuzzy matching of the file's meter name (or file name) against the registry.

Files whose best match falls below match.confidence_floor are skipped unless
--create-missing registers a new meter for them. A file whose dropped-row
fraction exceeds import.review_threshold is imported but flagged needs_review.`,
	Example: `
  # Import multiple vendor exports with name-based routing
  gokwh import -i MAIN-DB-2024-01.csv -i pumphouse_jan.xlsx

  # Import everything into meter 3, ignoring file names
  gokwh import -i export.csv --meter 3

  # Restrict fuzzy matching to one site
  gokwh import -i export.csv --site plant-a

  # Register unknown meters instead of skipping their files
  gokwh import -i new-site-export.csv --create-missing

  # Import with custom config file
  gokwh --configFile ./custom-gokwh.yaml import -i export.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDBPath(importDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		service := importer.NewService(store, cfg)
		results := service.Run(importInputs, importer.RunOptions{
			ForceMeterID:  importMeterID,
			SiteFilter:    importSite,
			CreateMissing: importCreateMissing,
		})

		for _, result := range results {
			fmt.Println(describeFileResult(result))
		}

		success, review, skipped, failed := countStatuses(results)
		fmt.Printf("Import completed. Files: %d, Success: %d, Needs review: %d, Skipped: %d, Failed: %d\n",
			len(results), success, review, skipped, failed)
		if failed > 0 {
			return fmt.Errorf("%d file(s) failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to local SQLite registry (default: registry.db_path from config)")
	importCmd.Flags().Int64Var(&importMeterID, "meter", 0, "Import all files into this meter id, skipping routing")
	importCmd.Flags().StringVar(&importSite, "site", "", "Restrict fuzzy matching to meters of this site")
	importCmd.Flags().BoolVar(&importCreateMissing, "create-missing", false, "Register a new meter when no registry meter matches")

	_ = importCmd.MarkFlagRequired("input")
}

func resolveDBPath(flagValue string, cfg *config.Config) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return cfg.Registry.DBPath
}

func describeFileResult(result importer.FileResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %s", result.Status, result.Path)
	if result.MeterName != "" {
		fmt.Fprintf(&b, " -> %s (id %d, score %d)", result.MeterName, result.MeterID, result.MatchScore)
	}
	if result.Result != nil {
		d := result.Result.Diagnostics
		fmt.Fprintf(&b, " [rows %d, dropped %d, interval %gm, %s..%s]",
			d.RowsRead, d.RowsDropped, result.Result.IntervalMinutes,
			result.Result.DateRangeStart, result.Result.DateRangeEnd)
	}
	if result.Err != nil {
		fmt.Fprintf(&b, ": %v", result.Err)
	}
	return b.String()
}

func countStatuses(results []importer.FileResult) (success, review, skipped, failed int) {
	for _, result := range results {
		switch result.Status {
		case importer.StatusSuccess:
			success++
		case importer.StatusNeedsReview:
			review++
		case importer.StatusSkipped:
			skipped++
		case importer.StatusFailed:
			failed++
		}
	}
	return success, review, skipped, failed
}
