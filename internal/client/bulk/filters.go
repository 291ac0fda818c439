package bulk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const savedFiltersFile = "savedFilters.json"

// SavedFilter is the last filter form submitted on a list view.
type SavedFilter struct {
	CurrentPath  string            `json:"currentPath"`
	FormSelector string            `json:"formSelector"`
	FilterData   map[string]string `json:"filterData"`
}

// FilterStore persists the saved filter in the client state directory.
type FilterStore struct {
	path string
}

func NewFilterStore(dir string) *FilterStore {
	return &FilterStore{path: filepath.Join(dir, savedFiltersFile)}
}

// Load returns the saved filter; ok is false when none was saved.
func (f *FilterStore) Load() (sf SavedFilter, ok bool, err error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return SavedFilter{}, false, nil
	}
	if err != nil {
		return SavedFilter{}, false, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return SavedFilter{}, false, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return sf, true, nil
}

func (f *FilterStore) Save(sf SavedFilter) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(sf)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// For returns the saved filter data when it was saved on currentPath.
func (f *FilterStore) For(currentPath string) (map[string]string, bool, error) {
	sf, ok, err := f.Load()
	if err != nil || !ok || sf.CurrentPath != currentPath {
		return nil, false, err
	}
	return sf.FilterData, true, nil
}
