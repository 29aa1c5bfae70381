package main

import (
	"github.com/spf13/cobra"
)

var listFile string
var listNoPretty bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFile, "file", "", "Path to the JSON database file")
	listCmd.Flags().BoolVar(&listNoPretty, "no-pretty", false, "Compact output, one document per line")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents in a database file",
	Long: `Display all documents in the database, in insertion order.

Examples:
  jdb list --file data.json
  jdb list --file data.json --no-pretty`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	path := mustResolveFile(listFile)

	s := mustOpenStore(path)
	defer s.Close()

	printDocuments(s.All(), prettyEnabled(listNoPretty))
	return nil
}
