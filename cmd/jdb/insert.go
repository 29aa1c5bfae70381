package main

import (
	"fmt"
	"os"

	"github.com/jdb-tool/jdb/internal/store"
	"github.com/spf13/cobra"
)

var insertFile string
var insertData string
var insertFileInput string

func init() {
	rootCmd.AddCommand(insertCmd)
	insertCmd.Flags().StringVar(&insertFile, "file", "", "Path to the JSON database file")
	insertCmd.Flags().StringVar(&insertData, "data", "", "JSON object or array of objects to insert")
	insertCmd.Flags().StringVar(&insertFileInput, "file-input", "", "Path to a JSON file with the data to insert")
	insertCmd.MarkFlagsMutuallyExclusive("data", "file-input")
	insertCmd.MarkFlagsOneRequired("data", "file-input")
}

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert documents into a database file",
	Long: `Add one or more documents to the database.

The payload is a single JSON object or a non-empty array of objects,
given inline with --data or read from a file with --file-input.

Examples:
  jdb insert --file data.json --data '{"name": "john", "age": 30}'
  jdb insert --file data.json --data '[{"name": "john"}, {"name": "jane"}]'
  jdb insert --file data.json --file-input payload.json`,
	Args: cobra.NoArgs,
	RunE: runInsert,
}

func runInsert(cmd *cobra.Command, args []string) error {
	payload := []byte(insertData)
	if insertFileInput != "" {
		data, err := os.ReadFile(insertFileInput)
		if err != nil {
			if os.IsNotExist(err) {
				exitWithError(ExitError, "input file not found: %s", insertFileInput)
			}
			if os.IsPermission(err) {
				exitWithError(ExitError, "permission denied reading input file: %s", insertFileInput)
			}
			exitWithError(ExitError, "reading input file: %v", err)
		}
		payload = data
	}

	// Validate the payload before touching the database file.
	docs, err := store.DecodeDocuments(payload)
	if err != nil {
		exitClassified(err)
	}

	path := mustResolveFile(insertFile)
	s := mustOpenStore(path)
	defer s.Close()

	if _, err := s.Insert(docs...); err != nil {
		exitClassified(err)
	}

	fmt.Printf("Inserted %s into %s\n", countNoun(len(docs)), path)
	return nil
}
