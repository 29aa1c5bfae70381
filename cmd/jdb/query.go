package main

import (
	"fmt"

	"github.com/jdb-tool/jdb/internal/document"
	"github.com/jdb-tool/jdb/internal/query"
	"github.com/spf13/cobra"
)

var queryFile string
var queryWhere string
var queryNoPretty bool
var queryFuzzy bool

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryFile, "file", "", "Path to the JSON database file")
	queryCmd.Flags().StringVar(&queryWhere, "where", "", `Condition, e.g. 'name == "john"' or 'age > 25'`)
	queryCmd.Flags().BoolVar(&queryNoPretty, "no-pretty", false, "Compact output, one document per line")
	queryCmd.Flags().BoolVar(&queryFuzzy, "fuzzy", false, "On zero == matches, suggest the most similar record")
	queryCmd.MarkFlagRequired("where")
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find documents matching a condition",
	Long: `Search the database for documents matching a single comparison.

A matching set of zero documents is a success, not an error. With
--fuzzy, an equality query that matches nothing reports the record
whose value for the queried field is most similar to the wanted value.

Examples:
  jdb query --file data.json --where 'name == "john"'
  jdb query --file data.json --where 'age >= 21' --no-pretty
  jdb query --file data.json --where 'name == "jhon"' --fuzzy`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cond, err := query.Parse(queryWhere)
	if err != nil {
		exitClassified(err)
	}

	path := mustResolveFile(queryFile)
	s := mustOpenStore(path)
	defer s.Close()

	matched := s.Search(cond)
	pretty := prettyEnabled(queryNoPretty)

	if len(matched) == 0 && queryFuzzy {
		if cond.Op == query.OpEqual {
			printFuzzySuggestion(cond, s.All(), pretty)
		} else {
			fmt.Println("No exact matches found.")
		}
		return nil
	}

	printDocuments(matched, pretty)
	return nil
}

// printFuzzySuggestion reports the best near-miss for a failed == query.
func printFuzzySuggestion(cond *query.Condition, docs []*document.Document, pretty bool) {
	fmt.Println("No exact matches found.")

	best, score, ok := cond.BestMatch(docs)
	if !ok {
		fmt.Println("No similar records found in the database.")
		return
	}

	fmt.Printf("\nDid you mean this record? (similarity: %.2f%%)\n", score*100)
	printDocuments([]*document.Document{best}, pretty)
}
