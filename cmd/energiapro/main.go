package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/energiapro-io/energiapro-client/cmd/energiapro/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "energiapro",
	Short: "EnergiaPro customer API CLI",
	Long: `A command-line interface for the EnergiaPro customer API.

List gas installations and export their metering data as text tables,
JSON, JSON lines, CSV, YAML, or Parquet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.energiapro/config.yml)")
	rootCmd.PersistentFlags().StringP("username", "u", "", "EnergiaPro API username")
	rootCmd.PersistentFlags().StringP("secret-key", "k", "", "EnergiaPro API secret key")
	rootCmd.PersistentFlags().String("base-url", "", "HTTPS base API URL")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, jsonl, yaml, csv, parquet)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout (default 30s)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("username", rootCmd.PersistentFlags().Lookup("username"))
	_ = viper.BindPFlag("secret_key", rootCmd.PersistentFlags().Lookup("secret-key"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewInstallationsCommand())
	rootCmd.AddCommand(commands.NewMeasurementsCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.energiapro/config.yml
		viper.AddConfigPath(filepath.Join(home, ".energiapro"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match, e.g. ENERGIAPRO_SECRET_KEY
	viper.SetEnvPrefix("ENERGIAPRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
