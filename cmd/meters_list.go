package cmd

import (
	"fmt"

	"gokwh/storage"

	"github.com/spf13/cobra"
)

var (
	metersListSite   string
	metersListDBPath string
)

var metersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered meters.",
	Example: `
  # List all meters
  gokwh meters list

  # List meters of one site
  gokwh meters list --site plant-a
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(metersListDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		identities, err := store.ListMeterIdentities(metersListSite)
		if err != nil {
			return err
		}

		if len(identities) == 0 {
			fmt.Println("No meters registered.")
			return nil
		}
		for _, identity := range identities {
			fmt.Printf("%d\t%s\t%s\n", identity.ID, identity.DisplayName, identity.Site)
		}
		return nil
	},
}

func init() {
	metersCmd.AddCommand(metersListCmd)

	metersListCmd.Flags().StringVar(&metersListSite, "site", "", "Only list meters of this site")
	metersListCmd.Flags().StringVar(&metersListDBPath, "db", "./gokwh.db", "Path to local SQLite registry")
}
