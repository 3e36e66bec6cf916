package tui

import (
	"context"
	"errors"
	"time"

	"numlist/internal/client"
	"numlist/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type Options struct {
	ServerURL string
	// StateDir holds the view-state database. Empty disables restore and save.
	StateDir string
	Logger   zerolog.Logger
	NoColor  bool
}

// Run shows the list view until the user quits or ctx is cancelled. The last search
// is restored from and saved to StateDir.
func Run(ctx context.Context, opts Options) error {
	applyColorProfile(opts.NoColor)

	st := store.Store{Dir: opts.StateDir}
	vs, err := st.LoadViewState(ctx, opts.ServerURL)
	if err != nil {
		opts.Logger.Warn().Err(err).Msg("load view state")
	}

	m := newAppModel(client.New(opts.ServerURL), opts.ServerURL, opts.Logger, vs)
	final, runErr := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	).Run()

	if fm, ok := final.(appModel); ok {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.SaveViewState(saveCtx, fm.viewState()); err != nil {
			opts.Logger.Warn().Err(err).Msg("save view state")
		}
	}
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return runErr
}
