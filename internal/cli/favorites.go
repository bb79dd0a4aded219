package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite routes",
	Long: `Manage your favorite departure→destination routes.

Subcommands:
  list                 List all favorite routes
  add <dep> <dest>     Save a route as a favorite
  remove <dep> <dest>  Remove a favorite route`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all favorite routes",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <departure> <destination>",
	Short: "Save a route as a favorite",
	Long:  `Save a departure→destination route as a favorite, by IATA codes.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <departure> <destination>",
	Short: "Remove a favorite route",
	Long:  `Remove a favorite route by its IATA code pair. Removing a route that is not saved is not an error.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runFavoritesRemove,
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	database, repo, err := openData()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	favoritesCh, err := repo.AllFavorites(ctx)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	favorites := <-favoritesCh
	if len(favorites) == 0 {
		fmt.Println("No favorite routes saved.")
		return nil
	}

	airportsCh, err := repo.AllAirports(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	index := models.AirportIndex(<-airportsCh)

	for _, f := range favorites {
		fmt.Printf("%s → %s  %s → %s\n",
			f.DepartureCode, f.DestinationCode,
			airportName(index, f.DepartureCode), airportName(index, f.DestinationCode))
	}
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	dep, dest := strings.ToUpper(args[0]), strings.ToUpper(args[1])

	database, repo, err := openData()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	airportsCh, err := repo.AllAirports(cmd.Context())
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	airports := <-airportsCh

	for _, code := range []string{dep, dest} {
		if _, ok := findByCode(airports, code); !ok {
			return fmt.Errorf("airport not found: %s", code)
		}
	}

	favorite := models.Favorite{DepartureCode: dep, DestinationCode: dest}
	if err := repo.InsertFavorite(cmd.Context(), favorite); err != nil {
		return fmt.Errorf("save favorite: %w", err)
	}

	fmt.Printf("Saved favorite route %s → %s\n", dep, dest)
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	dep, dest := strings.ToUpper(args[0]), strings.ToUpper(args[1])

	database, repo, err := openData()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	favorite := models.Favorite{DepartureCode: dep, DestinationCode: dest}
	if err := repo.DeleteFavorite(cmd.Context(), favorite); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	fmt.Printf("Removed favorite route %s → %s\n", dep, dest)
	return nil
}

// findByCode scans the catalog for an airport by IATA code.
func findByCode(airports []models.Airport, code string) (models.Airport, bool) {
	for _, a := range airports {
		if a.IATACode == code {
			return a, true
		}
	}
	return models.Airport{}, false
}

// airportName resolves a code to a display name, falling back to the
// code itself when the catalog has no matching airport.
func airportName(index map[string]models.Airport, code string) string {
	if a, ok := index[code]; ok {
		return a.Name
	}
	return code
}
