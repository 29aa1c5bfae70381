// Package main provides the jdb CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// A .env in the working directory may set JDB_FILE.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jdb",
	Short: "CRUD access to single-file JSON document databases",
	Long: `jdb manipulates TinyDB-format JSON database files from the command line.

Documents are listed, inserted, queried, updated and deleted through a
single comparison condition of the form 'field OP value' with operators
==, !=, >, <, >=, <=. String values are quoted ('name == "john"'),
numeric values are bare ('age > 25'); ordering operators are
numeric-only.

The database file comes from --file, the JDB_FILE environment variable
(also read from a .env file in the working directory), or default_file
in the global config. Every mutation rewrites the file atomically; no
file locking is done, so concurrent external writers are not supported.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}
