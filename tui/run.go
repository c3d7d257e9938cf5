package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/s0up4200/cinemaxx/store"
)

// Run starts the browser on the alternate screen and blocks until it exits
func Run(ctx context.Context, catalog Catalog, st *store.Store, logger zerolog.Logger, opts Options) error {
	m := New(ctx, catalog, st, logger, opts)
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("browser exited: %w", err)
	}
	return nil
}
