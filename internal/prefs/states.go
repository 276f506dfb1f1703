package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jask/headerscroll/internal/database"
	"github.com/jask/headerscroll/internal/database/repository"
)

const statesFile = "states.json"

// DefaultStatePath is the state file under the user config dir.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "headerscroll", statesFile), nil
}

// StateFile keeps saved container state in a JSON file, for setups that
// do not want a database. It mirrors repository.StateRepo.
type StateFile struct {
	path string
}

func NewStateFile(path string) *StateFile { return &StateFile{path: path} }

func (f *StateFile) Path() string { return f.path }

func (f *StateFile) load() (map[string]repository.ContainerState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]repository.ContainerState{}, nil
		}
		return nil, err
	}
	var states []repository.ContainerState
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	out := make(map[string]repository.ContainerState, len(states))
	for _, s := range states {
		out[s.ID] = s
	}
	return out, nil
}

func (f *StateFile) store(states map[string]repository.ContainerState) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sorted(states), "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func sorted(states map[string]repository.ContainerState) []repository.ContainerState {
	out := make([]repository.ContainerState, 0, len(states))
	for _, s := range states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func normalize(s repository.ContainerState) repository.ContainerState {
	if s.ID == "" {
		s.ID = repository.ContainerID(s.Name)
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = database.Now()
	}
	s.Offset = max(s.Offset, 0)
	s.Bound = max(s.Bound, 0)
	return s
}

func (f *StateFile) Save(ctx context.Context, s repository.ContainerState) error {
	return f.SaveAll(ctx, []repository.ContainerState{s})
}

// SaveAll upserts states with a single atomic write.
func (f *StateFile) SaveAll(_ context.Context, states []repository.ContainerState) error {
	all, err := f.load()
	if err != nil {
		return err
	}
	for _, s := range states {
		s = normalize(s)
		all[s.ID] = s
	}
	return f.store(all)
}

func (f *StateFile) ByName(_ context.Context, name string) (*repository.ContainerState, error) {
	all, err := f.load()
	if err != nil {
		return nil, err
	}
	s, ok := all[repository.ContainerID(name)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *StateFile) List(context.Context) ([]repository.ContainerState, error) {
	all, err := f.load()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return sorted(all), nil
}

func (f *StateFile) DeleteByName(_ context.Context, name string) (bool, error) {
	all, err := f.load()
	if err != nil {
		return false, err
	}
	id := repository.ContainerID(name)
	if _, ok := all[id]; !ok {
		return false, nil
	}
	delete(all, id)
	return true, f.store(all)
}

func (f *StateFile) DeleteAll(context.Context) (int, error) {
	all, err := f.load()
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}
	return len(all), f.store(map[string]repository.ContainerState{})
}
