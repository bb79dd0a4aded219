// Package cli provides the command-line interface for Flightdeck.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/flightdeck/internal/config"
	"github.com/asteroid-belt/flightdeck/internal/db"
	"github.com/asteroid-belt/flightdeck/internal/repository"
	"github.com/asteroid-belt/flightdeck/internal/store"
	"github.com/asteroid-belt/flightdeck/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "flightdeck",
	Short: "Search airports and bookmark favorite routes",
	Long: `Search airports and bookmark favorite routes.

A local-first flight route browser: search the bundled airport catalog,
explore destination routes from any airport, and save favorite
departure→destination pairs. All data lives in ~/.flightdeck.

Run without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(favoritesCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// openData loads configuration, opens the database, and builds the
// repository over its stores. The caller owns closing the database.
func openData() (*db.DB, *repository.Repository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)

	database, err := db.New(db.Config{
		Path:        paths.Database,
		Debug:       cfg.Debug,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	repo := repository.New(
		store.NewCatalogStore(database),
		store.NewFavoriteStore(database),
		store.NewQueryStore(database),
	)
	return database, repo, nil
}
