package cmd

import "github.com/spf13/cobra"

var metersCmd = &cobra.Command{
	Use:   "meters",
	Short: "Manage the meter registry.",
	Long: `List and register meters in the local SQLite registry.

Fuzzy routing during import matches file names against registered meters, so
every meter a site exports for should be registered before its first import
(or imported with --create-missing).`,
	Example: `
  # List registered meters
  gokwh meters list

  # List meters of one site
  gokwh meters list --site plant-a

  # Register a meter
  gokwh meters add --name "Main DB" --site plant-a
`,
}

func init() {
	rootCmd.AddCommand(metersCmd)
}
