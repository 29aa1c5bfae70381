package main

import (
	"fmt"
	"os"

	"github.com/jdb-tool/jdb/internal/export"
	"github.com/spf13/cobra"
)

var exportFile string
var exportTo string
var exportFormat string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Path to the JSON database file")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Write a SQLite database at this path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Write csv or jsonl to stdout")
	exportCmd.MarkFlagsMutuallyExclusive("to", "format")
	exportCmd.MarkFlagsOneRequired("to", "format")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection to SQLite, CSV or JSONL",
	Long: `Dump the collection for ad-hoc analysis.

With --to, a SQLite database is written (replacing any existing file)
with one row per document: columns are inferred from the union of
top-level fields, nested values are stored as JSON text, and the
document id becomes the _id primary key. With --format, CSV or JSONL
goes to stdout.

The export is one-way; the JSON file stays the source of truth.

Examples:
  jdb export --file data.json --to data.db
  jdb export --file data.json --format csv > data.csv
  jdb export --file data.json --format jsonl > data.jsonl`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "" && exportFormat != "csv" && exportFormat != "jsonl" {
		exitWithError(ExitError, "unknown format %q: use csv or jsonl", exportFormat)
	}

	path := mustResolveFile(exportFile)
	s := mustOpenStore(path)
	defer s.Close()

	entries := s.Entries()

	switch {
	case exportTo != "":
		count, err := export.ToSQLite(exportTo, entries)
		if err != nil {
			exitClassified(err)
		}
		fmt.Printf("Exported %s to %s\n", countNoun(count), exportTo)
	case exportFormat == "csv":
		if err := export.WriteCSV(os.Stdout, entries); err != nil {
			exitClassified(err)
		}
	case exportFormat == "jsonl":
		if err := export.WriteJSONL(os.Stdout, entries); err != nil {
			exitClassified(err)
		}
	}

	return nil
}
