package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/headerscroll/internal/database"
)

// StateRepo handles saved container state.
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo { return &StateRepo{db: db} }

const stateColumns = `id, name, offset_units, bound_units, blob, updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveState(ctx context.Context, db execer, s ContainerState) error {
	if s.ID == "" {
		s.ID = ContainerID(s.Name)
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = database.Now()
	}
	_, err := db.ExecContext(ctx, `
	INSERT INTO container_states(id, name, offset_units, bound_units, blob, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 offset_units=excluded.offset_units,
	 bound_units=excluded.bound_units,
	 blob=excluded.blob,
	 updated_at=excluded.updated_at;
	`, s.ID, s.Name, max(s.Offset, 0), max(s.Bound, 0), s.Blob, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save state %s: %w", s.Name, err)
	}
	return nil
}

// Save upserts one container. An empty ID is derived from the name.
func (r *StateRepo) Save(ctx context.Context, s ContainerState) error {
	return saveState(ctx, r.db, s)
}

// SaveAll upserts every state in one transaction.
func (r *StateRepo) SaveAll(ctx context.Context, states []ContainerState) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, s := range states {
			if err := saveState(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanState(row interface{ Scan(...any) error }) (ContainerState, error) {
	var s ContainerState
	err := row.Scan(&s.ID, &s.Name, &s.Offset, &s.Bound, &s.Blob, &s.UpdatedAt)
	return s, err
}

func (r *StateRepo) Get(ctx context.Context, id string) (*ContainerState, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stateColumns+` FROM container_states WHERE id = ?`, id)
	s, err := scanState(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StateRepo) ByName(ctx context.Context, name string) (*ContainerState, error) {
	return r.Get(ctx, ContainerID(name))
}

func (r *StateRepo) List(ctx context.Context) ([]ContainerState, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+stateColumns+` FROM container_states ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ContainerState
	for rows.Next() {
		s, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteByName removes one container and reports whether it existed.
func (r *StateRepo) DeleteByName(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM container_states WHERE id = ?`, ContainerID(name))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteAll wipes every saved container and returns how many were removed.
func (r *StateRepo) DeleteAll(ctx context.Context) (int, error) {
	var n int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM container_states`)
		if err != nil {
			return fmt.Errorf("clear container_states: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	_, _ = r.db.ExecContext(ctx, "VACUUM")
	return int(n), nil
}
