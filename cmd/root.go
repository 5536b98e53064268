/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/spf13/viper"
	"os"

	"github.com/spf13/cobra"
	"gokwh/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gokwh",
	Short: "Import, aggregate, and explore electricity meter exports from multiple vendor formats.",
	Long: `
**********************************************
*              GO KWH GO                     *
**********************************************

This CLI ingests meter export files (CSV, Excel), detects their layout, builds
hourly/daily/monthly consumption profiles, persists them in a local SQLite
registry, and serves a local read-only viewer over the results.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- Delimited text: .csv and friends (comma, semicolon, tab)
`,
	Example: `
  # Create configuration file
  gokwh config create

  # Register a meter
  gokwh meters add --name "Main DB" --site plant-a

  # Import vendor exports, routing each file to a meter by name
  gokwh import -i MAIN-DB-2024-01.csv -i pumphouse_jan.xlsx

  # Import into one specific meter regardless of file names
  gokwh import -i export.csv --meter 3

  # Export daily profiles
  gokwh export --meter 3 --mode daily --output ./daily.csv

  # Start the local viewer
  gokwh serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.gokwh.yaml, then ./.gokwh.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	return cmd != nil && cmd.Name() == "import"
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gokwh" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gokwh")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: gokwh config create")
	}
}
