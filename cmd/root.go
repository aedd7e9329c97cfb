package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "schema-validator",
	Short: "Compare the schema of two databases",
	Long: `
 ___  ___ _  _ ___ __  __   _    __   ___   _    ___ ___   _ _____ ___  ___
/ __|/ __| || | __|  \/  | /_\   \ \ / /_\ | |  |_ _|   \ /_\_   _/ _ \| _ \
\__ \ (__| __ | _|| |\/| |/ _ \   \ V / _ \| |__ | || |) / _ \| || (_) |   /
|___/\___|_||_|___|_|  |_/_/ \_\   \_/_/ \_\____|___|___/_/ \_\_| \___/|_|_\

Extracts tables, views, functions, stored procedures and triggers from a
source and a target database and reports every structural difference.
`,
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schema-validator.yaml)")

	viper.SetDefault("comparison.compare", "tables,views")
	viper.SetDefault("output.directory", "output")
	viper.SetDefault("output.log_file", "schema_validator.log")
	viper.SetDefault("output.error_log_file", "schema_validator_error.log")
	viper.SetDefault("output.log_level", "info")
	viper.SetDefault("settings.query_timeout", "60s")
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// .env is optional; credentials referenced as $VAR in the config come from here
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("schema-validator")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCHEMA_VALIDATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
