package cmd

import (
	"fmt"

	"gokwh/storage"

	"github.com/spf13/cobra"
)

var (
	metersAddName   string
	metersAddSite   string
	metersAddDBPath string
)

var metersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new meter.",
	Long: `Register a meter under its display name.

The name is also stored in normalized form (lowercased, punctuation stripped)
and must be unique; fuzzy routing during import matches against it.`,
	Example: `
  # Register a meter
  gokwh meters add --name "Main DB" --site plant-a
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(metersAddDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		identity, err := store.CreateMeter(metersAddName, metersAddSite)
		if err != nil {
			return err
		}

		fmt.Printf("Meter registered. ID: %d, Name: %s, Site: %s\n", identity.ID, identity.DisplayName, identity.Site)
		return nil
	},
}

func init() {
	metersCmd.AddCommand(metersAddCmd)

	metersAddCmd.Flags().StringVar(&metersAddName, "name", "", "Display name of the meter")
	metersAddCmd.Flags().StringVar(&metersAddSite, "site", "", "Site the meter belongs to")
	metersAddCmd.Flags().StringVar(&metersAddDBPath, "db", "./gokwh.db", "Path to local SQLite registry")

	_ = metersAddCmd.MarkFlagRequired("name")
}
