package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/flightdeck/internal/controller"
)

var routesCmd = &cobra.Command{
	Use:   "routes <iata>",
	Short: "List destination routes from an airport",
	Long: `List every possible destination route from the given airport.

Routes already saved as favorites are marked with a star.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoutes,
}

func runRoutes(cmd *cobra.Command, args []string) error {
	code := strings.ToUpper(args[0])

	database, repo, err := openData()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	airportsCh, err := repo.AllAirports(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	favoritesCh, err := repo.AllFavorites(ctx)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	state := controller.RoutesSuccess{
		Airports:  <-airportsCh,
		Favorites: <-favoritesCh,
	}

	current, ok := findByCode(state.Airports, code)
	if !ok {
		return fmt.Errorf("airport not found: %s", code)
	}

	fmt.Printf("Routes from %s (%s):\n", current.Name, current.IATACode)
	for _, dest := range state.Destinations(current.ID) {
		marker := " "
		if state.IsFavoriteRoute(current, dest) {
			marker = "★"
		}
		fmt.Printf("  %s %s → %s  %s\n", marker, current.IATACode, dest.IATACode, dest.Name)
	}
	return nil
}
