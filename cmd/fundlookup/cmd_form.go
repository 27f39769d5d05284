package main

import (
	"errors"
	"fmt"

	"fundlookup/cmd/fundlookup/ui"
	"fundlookup/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runForm starts the interactive form. The dataset loads in the background;
// lookups made before it arrives report not found.
func runForm(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	// Log lines on stderr would draw over the form.
	if cfg.Logging.Output == "stderr" {
		cfg.Logging.Output = "file"
		if err := logging.Initialize(cfg.Logging); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	}

	loader := newLoader(cfg)
	loader.Start(ctx)

	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
	form := ui.NewFormModel(ctx, loader, ui.FormOptionsFromConfig(cfg), styles)

	p := tea.NewProgram(form, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("form: %w", err)
	}
	logging.Get(logging.CategoryUI).Info("form closed")
	return nil
}
