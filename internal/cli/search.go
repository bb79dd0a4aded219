package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the airport catalog",
	Long: `Search the airport catalog by name or IATA code.

The match is a case-insensitive substring match. With no query, the
full catalog is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	database, repo, err := openData()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	results, err := repo.AirportsByQuery(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search airports: %w", err)
	}

	airports := <-results
	if len(airports) == 0 {
		fmt.Printf("No airports found for query: %s\n", query)
		return nil
	}

	for _, a := range airports {
		fmt.Printf("%-4s %-50s %12d passengers\n", a.IATACode, a.Name, a.Passengers)
	}
	return nil
}
