package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/headerscroll/internal/database/repository"
	"github.com/jask/headerscroll/internal/scroll"
)

// StateBackend stores saved container state. repository.StateRepo and
// prefs.StateFile both implement it.
type StateBackend interface {
	Save(ctx context.Context, s repository.ContainerState) error
	SaveAll(ctx context.Context, states []repository.ContainerState) error
	ByName(ctx context.Context, name string) (*repository.ContainerState, error)
	List(ctx context.Context) ([]repository.ContainerState, error)
	DeleteByName(ctx context.Context, name string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
}

// StateService persists containers across runs.
type StateService struct {
	Backend StateBackend
	Log     *zap.Logger
}

func (s *StateService) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Persist detaches c, cancelling its animations, and saves it under name.
// super is the host's own state, chained beneath the container's.
func (s *StateService) Persist(ctx context.Context, name string, c *scroll.Container, super []byte) error {
	if s.Backend == nil {
		return fmt.Errorf("state: backend not configured")
	}
	c.Detach()
	blob, err := c.SaveState(super)
	if err != nil {
		return err
	}
	st := c.State()
	if err := s.Backend.Save(ctx, repository.ContainerState{
		Name:   name,
		Offset: st.Offset,
		Bound:  st.Bound,
		Blob:   blob,
	}); err != nil {
		return err
	}
	s.log().Debug("state saved", zap.String("container", name), zap.Int("offset", st.Offset), zap.Int("bound", st.Bound))
	return nil
}

// Restore applies the state saved under name to c and returns the host's
// part. Nothing saved yields nil, nil. A blob the container does not
// recognise falls back to the stored offset and bound.
func (s *StateService) Restore(ctx context.Context, name string, c *scroll.Container) ([]byte, error) {
	if s.Backend == nil {
		return nil, fmt.Errorf("state: backend not configured")
	}
	row, err := s.Backend.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load state %s: %w", name, err)
	}
	if row == nil {
		return nil, nil
	}
	super, ok := c.RestoreState(row.Blob)
	if !ok {
		s.log().Warn("foreign saved state, using stored offset",
			zap.String("container", name),
			zap.Error(scroll.ErrForeignState))
		c.Restore(scroll.SavedState{Offset: row.Offset, Bound: row.Bound})
		return super, nil
	}
	return super, nil
}

// ImportResult summarises an Import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// Export writes every saved container as JSON.
func (s *StateService) Export(ctx context.Context, w io.Writer) error {
	states, err := s.Backend.List(ctx)
	if err != nil {
		return err
	}
	if states == nil {
		states = []repository.ContainerState{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(states); err != nil {
		return fmt.Errorf("encode states: %w", err)
	}
	return nil
}

// Import reads an Export document and saves every entry that has a name,
// all or nothing.
func (s *StateService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	res := ImportResult{}
	var states []repository.ContainerState
	if err := json.NewDecoder(r).Decode(&states); err != nil {
		return res, fmt.Errorf("decode states: %w", err)
	}
	keep := states[:0]
	for i, st := range states {
		if strings.TrimSpace(st.Name) == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("entry %d: missing name", i))
			continue
		}
		// ids are always derived from the name
		st.ID = ""
		keep = append(keep, st)
	}
	if len(keep) == 0 {
		return res, nil
	}
	if err := s.Backend.SaveAll(ctx, keep); err != nil {
		return res, err
	}
	res.Imported = len(keep)
	return res, nil
}

// Clear deletes one container, or all of them when name is empty, and
// returns how many were removed.
func (s *StateService) Clear(ctx context.Context, name string) (int, error) {
	if s.Backend == nil {
		return 0, errors.New("state: backend not configured")
	}
	if name == "" {
		n, err := s.Backend.DeleteAll(ctx)
		if err != nil {
			return 0, err
		}
		s.log().Info("all saved state cleared", zap.Int("removed", n))
		return n, nil
	}
	ok, err := s.Backend.DeleteByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	s.log().Info("saved state cleared", zap.String("container", name))
	return 1, nil
}
