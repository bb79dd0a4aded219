package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/flightdeck/internal/config"
	"github.com/asteroid-belt/flightdeck/internal/log"
	"github.com/asteroid-belt/flightdeck/internal/tui"
)

// runTUI launches the interactive terminal UI. This is the root
// command's default action.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// File logging keeps controller errors out of the rendered UI.
	paths := config.GetPaths(cfg)
	if err := log.Init(paths.Logs); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = log.Close() }()

	database, repo, err := openData()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app := tui.New(ctx, repo)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
