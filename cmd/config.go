package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gokwh configuration file values.",
	Long: `Create and display the gokwh configuration file.

The configuration stores application-wide values and import routing rules:
- registry.db_path
- import.day_first / import.review_threshold
- match.confidence_floor
- rules[].file_template / meter_id`,
	Example: `
  # Create default config in $HOME/.gokwh.yaml
  gokwh config create

  # Show active config and source file
  gokwh config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
