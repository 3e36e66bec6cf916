package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// ViewState is what the TUI restores on relaunch, scoped per server URL.
//
// It is best effort: callers should tolerate missing data and save failures.
type ViewState struct {
	ServerURL string
	Search    string
	// CursorID is the item under the cursor when the TUI exited (0 = none).
	CursorID  int64
	UpdatedAt time.Time
}

func (s Store) LoadViewState(ctx context.Context, serverURL string) (ViewState, error) {
	serverURL = strings.TrimSpace(serverURL)
	st := ViewState{ServerURL: serverURL}
	if strings.TrimSpace(s.Dir) == "" {
		return st, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return st, err
	}
	defer db.Close()

	var updatedMs int64
	err = db.QueryRowContext(ctx,
		`SELECT search, cursor_id, updated_at_unixms FROM view_state WHERE server_url = ?`, serverURL,
	).Scan(&st.Search, &st.CursorID, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	st.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return st, nil
}

func (s Store) SaveViewState(ctx context.Context, st ViewState) error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO view_state(server_url, search, cursor_id, updated_at_unixms) VALUES(?, ?, ?, ?)
		ON CONFLICT(server_url) DO UPDATE SET
			search = excluded.search,
			cursor_id = excluded.cursor_id,
			updated_at_unixms = excluded.updated_at_unixms`,
		strings.TrimSpace(st.ServerURL), st.Search, st.CursorID, st.UpdatedAt.UnixMilli(),
	)
	return err
}
