package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/tracker"
	"github.com/Easwarasrisai789/TaskFlow/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"dashboard"},
	Short:   "Open the live dashboard",
	Long: `Opens the interactive dashboard. It follows the task store and redraws
whenever tasks change, including changes made from another terminal.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	tr := newTracker(cfg)
	model := tui.NewBoard(ctx, tr, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// A failed stream stays on screen as the error state.
	go func() {
		_ = tr.Run(ctx, func(st tracker.State) {
			p.Send(tui.StateMsg{State: st})
		})
	}()

	_, err = p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
