package cmd

import (
	"fmt"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
	"gokwh/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  gokwh config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("registry.db_path: %s\n", cfg.Registry.DBPath)
			fmt.Printf("import.day_first: %t\n", cfg.Import.DayFirst)
			fmt.Printf("import.review_threshold: %g\n", cfg.Import.ReviewThreshold)
			fmt.Printf("match.confidence_floor: %d\n", cfg.Match.ConfidenceFloor)
			fmt.Printf("rules: %d\n", len(cfg.Rules))
			for i, rule := range cfg.Rules {
				fmt.Printf("rules[%d].name: %s\n", i, rule.Name)
				fmt.Printf("rules[%d].file_template: %s\n", i, rule.FileTemplate)
				fmt.Printf("rules[%d].meter_id: %d\n", i, rule.MeterID)
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
