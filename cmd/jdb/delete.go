package main

import (
	"fmt"

	"github.com/jdb-tool/jdb/internal/query"
	"github.com/spf13/cobra"
)

var deleteFile string
var deleteWhere string

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVar(&deleteFile, "file", "", "Path to the JSON database file")
	deleteCmd.Flags().StringVar(&deleteWhere, "where", "", `Condition selecting the documents to delete`)
	deleteCmd.MarkFlagRequired("where")
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete documents matching a condition",
	Long: `Permanently remove every document matching the condition.

Matching zero documents is a success and leaves the file untouched.

Example:
  jdb delete --file data.json --where 'status == "stale"'`,
	Args: cobra.NoArgs,
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	cond, err := query.Parse(deleteWhere)
	if err != nil {
		exitClassified(err)
	}

	path := mustResolveFile(deleteFile)
	s := mustOpenStore(path)
	defer s.Close()

	count, err := s.Remove(cond)
	if err != nil {
		exitClassified(err)
	}

	fmt.Printf("Deleted %s from %s\n", countNoun(count), path)
	return nil
}
