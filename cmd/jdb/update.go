package main

import (
	"fmt"

	"github.com/jdb-tool/jdb/internal/query"
	"github.com/jdb-tool/jdb/internal/store"
	"github.com/spf13/cobra"
)

var updateFile string
var updateWhere string
var updateData string

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateFile, "file", "", "Path to the JSON database file")
	updateCmd.Flags().StringVar(&updateWhere, "where", "", `Condition selecting the documents to update`)
	updateCmd.Flags().StringVar(&updateData, "data", "", "JSON object with the fields to merge in")
	updateCmd.MarkFlagRequired("where")
	updateCmd.MarkFlagRequired("data")
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update documents matching a condition",
	Long: `Merge a JSON patch into every document matching the condition.

Existing fields are overwritten, new fields are added; other fields are
left alone. Matching zero documents is a success and leaves the file
untouched.

Example:
  jdb update --file data.json --where 'name == "john"' --data '{"age": 31}'`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cond, err := query.Parse(updateWhere)
	if err != nil {
		exitClassified(err)
	}
	patch, err := store.DecodeDocument([]byte(updateData))
	if err != nil {
		exitClassified(err)
	}

	path := mustResolveFile(updateFile)
	s := mustOpenStore(path)
	defer s.Close()

	count, err := s.Update(cond, patch)
	if err != nil {
		exitClassified(err)
	}

	fmt.Printf("Updated %s in %s\n", countNoun(count), path)
	return nil
}
