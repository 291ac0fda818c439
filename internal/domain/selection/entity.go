package selection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SelectAllFlag records whether "select all matching filter" was used on a view.
type SelectAllFlag string

const (
	FlagAbsent   SelectAllFlag = ""
	FlagCleared  SelectAllFlag = "0"
	FlagSelected SelectAllFlag = "1"
)

// Set is an unordered collection of entity identifiers. The zero value is ready to use.
type Set struct {
	ids map[string]struct{}
}

// NewSet builds a Set from ids, dropping blanks and duplicates.
func NewSet(ids ...string) Set {
	var s Set
	s.Add(ids...)
	return s
}

// Add inserts ids and returns how many were not already present.
func (s *Set) Add(ids ...string) int {
	if s.ids == nil {
		s.ids = make(map[string]struct{}, len(ids))
	}
	added := 0
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		added++
	}
	return added
}

// Remove deletes ids and returns how many were present.
func (s *Set) Remove(ids ...string) int {
	removed := 0
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := s.ids[id]; ok {
			delete(s.ids, id)
			removed++
		}
	}
	return removed
}

func (s *Set) Clear() {
	s.ids = nil
}

func (s Set) Has(id string) bool {
	_, ok := s.ids[strings.TrimSpace(id)]
	return ok
}

func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns the members sorted, never nil.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s Set) Clone() Set {
	return NewSet(s.IDs()...)
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	ids, err := decodeIDs(data)
	if err != nil {
		return err
	}
	s.Clear()
	s.Add(ids...)
	return nil
}

// ParseIDs decodes the JSON array carried by the ids form field.
// Blank input is an empty selection. Malformed input yields an empty
// slice together with ErrMalformedIDs so callers never act on garbage.
func ParseIDs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	ids, err := decodeIDs([]byte(raw))
	if err != nil {
		return []string{}, err
	}
	return NewSet(ids...).IDs(), nil
}

// decodeIDs accepts both string and numeric identifiers, since list views
// render primary keys either way.
func decodeIDs(data []byte) ([]string, error) {
	if string(bytes.TrimSpace(data)) == "null" {
		return []string{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIDs, err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			ids = append(ids, v)
		case json.Number:
			ids = append(ids, v.String())
		default:
			return nil, fmt.Errorf("%w: unsupported identifier %v", ErrMalformedIDs, item)
		}
	}
	return ids, nil
}

// State is the selection of one list-view instance.
type State struct {
	ScopeID   string
	View      string
	UserID    string
	Selected  Set
	Clicked   SelectAllFlag
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewState(scopeID, view, userID string, now time.Time) State {
	return State{
		ScopeID:   scopeID,
		View:      view,
		UserID:    userID,
		Clicked:   FlagAbsent,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Toggle adds id when checked and removes it otherwise.
func (s *State) Toggle(id string, checked bool) {
	if checked {
		s.Selected.Add(id)
		return
	}
	s.Selected.Remove(id)
}

// Union merges ids from a select-all and raises the select-all flag.
func (s *State) Union(ids []string) int {
	s.Clicked = FlagSelected
	return s.Selected.Add(ids...)
}

// Subtract removes ids from an unselect-all and lowers the select-all flag.
func (s *State) Subtract(ids []string) int {
	s.Clicked = FlagCleared
	return s.Selected.Remove(ids...)
}

// Ticked returns the members of visible that are selected, in visible order.
func (s State) Ticked(visible []string) []string {
	out := make([]string, 0, len(visible))
	seen := make(map[string]struct{}, len(visible))
	for _, id := range visible {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s.Selected.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s State) HeaderChecked() bool {
	return s.Clicked == FlagSelected
}

func (s State) Count() int {
	return s.Selected.Len()
}

func (s State) Clone() State {
	c := s
	c.Selected = s.Selected.Clone()
	return c
}
