package bulk

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type ActionKey string

const (
	ActionDelete    ActionKey = "delete"
	ActionApprove   ActionKey = "approve"
	ActionReject    ActionKey = "reject"
	ActionArchive   ActionKey = "archive"
	ActionUnarchive ActionKey = "unarchive"
	ActionExport    ActionKey = "export"
)

// Severity themes the confirmation dialog of an action.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityQuestion Severity = "question"
)

func ParseActionKey(s string) (ActionKey, error) {
	switch key := ActionKey(strings.ToLower(strings.TrimSpace(s))); key {
	case ActionDelete, ActionApprove, ActionReject, ActionArchive, ActionUnarchive, ActionExport:
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrActionNotSupported, s)
}

func (a ActionKey) Severity() Severity {
	switch a {
	case ActionApprove:
		return SeverityInfo
	case ActionDelete:
		return SeverityError
	case ActionExport:
		return SeverityQuestion
	default:
		return SeverityWarning
	}
}

// IsMutation reports whether the action changes rows (POST) rather than reading them (GET).
func (a ActionKey) IsMutation() bool {
	return a != ActionExport
}

// Column is one exported spreadsheet column.
type Column struct {
	Name   string
	Header string
}

// Entity describes a list view whose rows can be bulk-processed.
type Entity struct {
	Module string
	Name   string
	Label  string
	Table  string

	// Columns a select-all filter may constrain.
	FilterColumns []string

	// Approve/reject move rows from PendingStatus; empty StatusColumn disables both.
	StatusColumn   string
	PendingStatus  string
	ApprovedStatus string
	RejectedStatus string

	// Archive/unarchive toggle ActiveColumn; empty disables both.
	ActiveColumn string

	ExportColumns []Column
}

func (e Entity) View() string {
	return e.Module + "." + e.Name
}

func (e Entity) Supports(action ActionKey) bool {
	switch action {
	case ActionDelete:
		return true
	case ActionApprove, ActionReject:
		return e.StatusColumn != ""
	case ActionArchive, ActionUnarchive:
		return e.ActiveColumn != ""
	case ActionExport:
		return len(e.ExportColumns) > 0
	}
	return false
}

// Path is the endpoint a list view calls for action, relative to the site root.
func (e Entity) Path(action ActionKey) string {
	base := "/" + e.Module + "/" + e.Name
	switch action {
	case ActionDelete:
		return base + SuffixDelete
	case ActionApprove:
		return base + SuffixApprove
	case ActionReject:
		return base + SuffixReject
	case ActionArchive, ActionUnarchive:
		return base + SuffixArchive
	case ActionExport:
		return base + SuffixExport
	}
	return base
}

// SelectPath is the endpoint answering select-all queries.
func (e Entity) SelectPath() string {
	return "/" + e.Module + "/" + e.Name + SuffixSelectFilter
}

func (e Entity) AllowsFilter(column string) bool {
	for _, c := range e.FilterColumns {
		if c == column {
			return true
		}
	}
	return false
}

func (e Entity) ExportHeaders() []string {
	headers := make([]string, len(e.ExportColumns))
	for i, c := range e.ExportColumns {
		headers[i] = c.Header
	}
	return headers
}

const (
	SuffixDelete       = "-bulk-delete"
	SuffixApprove      = "-bulk-approve"
	SuffixReject       = "-bulk-reject"
	SuffixArchive      = "-bulk-archive"
	SuffixExport       = "-info-export"
	SuffixSelectFilter = "-select-filter"
)

// SplitOperation splits an endpoint segment such as "leave-request-bulk-delete"
// into the entity name and the operation suffix.
func SplitOperation(segment string) (name, suffix string, ok bool) {
	for _, s := range []string{SuffixDelete, SuffixApprove, SuffixReject, SuffixArchive, SuffixExport, SuffixSelectFilter} {
		if n, found := strings.CutSuffix(segment, s); found && n != "" {
			return n, s, true
		}
	}
	return "", "", false
}

var identifierRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
var slugRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Registry holds the entities exposed for bulk actions, keyed by view.
type Registry struct {
	byView map[string]Entity
}

func NewRegistry(entities ...Entity) (*Registry, error) {
	r := &Registry{byView: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		if err := validateEntity(e); err != nil {
			return nil, err
		}
		if _, dup := r.byView[e.View()]; dup {
			return nil, fmt.Errorf("duplicate entity %s", e.View())
		}
		r.byView[e.View()] = e
	}
	return r, nil
}

func validateEntity(e Entity) error {
	if !slugRegex.MatchString(e.Module) || !slugRegex.MatchString(e.Name) {
		return fmt.Errorf("entity %q: module and name must be lowercase slugs", e.View())
	}
	columns := []string{e.Table}
	columns = append(columns, e.FilterColumns...)
	for _, c := range e.ExportColumns {
		columns = append(columns, c.Name)
	}
	if e.StatusColumn != "" {
		columns = append(columns, e.StatusColumn)
	}
	if e.ActiveColumn != "" {
		columns = append(columns, e.ActiveColumn)
	}
	for _, c := range columns {
		if !identifierRegex.MatchString(c) {
			return fmt.Errorf("entity %q: invalid identifier %q", e.View(), c)
		}
	}
	return nil
}

func (r *Registry) Lookup(module, name string) (Entity, error) {
	return r.ByView(module + "." + name)
}

func (r *Registry) ByView(view string) (Entity, error) {
	e, ok := r.byView[view]
	if !ok {
		return Entity{}, fmt.Errorf("%w: %s", ErrUnknownEntity, view)
	}
	return e, nil
}

// All returns the entities ordered by view.
func (r *Registry) All() []Entity {
	out := make([]Entity, 0, len(r.byView))
	for _, e := range r.byView {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].View() < out[j].View() })
	return out
}

type BulkResult struct {
	Action    ActionKey `json:"action"`
	View      string    `json:"view"`
	Requested int       `json:"requested"`
	Affected  int64     `json:"affected"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
