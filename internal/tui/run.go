package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive voting screen and blocks until the user quits.
func Run(ctx context.Context, gw Gateway, opts Options) error {
	p := tea.NewProgram(New(ctx, gw, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
