package main

import (
	"fmt"
	"strconv"

	"github.com/jdb-tool/jdb/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set global configuration",
	Long: fmt.Sprintf(`Manage the global config file (%s).

Keys:
  default_file  database file used when --file and %s are unset
  pretty        default for pretty output (true/false)`, config.Path(), config.EnvFile),
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	fmt.Printf("default_file: %s\n", cfg.DefaultFile)
	pretty := "true"
	if cfg.Pretty != nil && !*cfg.Pretty {
		pretty = "false"
	}
	fmt.Printf("pretty: %s\n", pretty)
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	switch key {
	case "default_file":
		cfg.DefaultFile = value
	case "pretty":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "pretty must be true or false, got %q", value)
		}
		cfg.Pretty = &b
	default:
		exitWithError(ExitError, "unknown config key %q (use default_file or pretty)", key)
	}

	if err := config.Save(cfg); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}
