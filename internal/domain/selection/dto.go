package selection

import "github.com/horilla-hris/hris-bulk-go/internal/pkg/validator"

type OpenRequest struct {
	View   string `json:"view"`
	UserID string `json:"-"`
}

func (r *OpenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.View) {
		errs = append(errs, validator.ValidationError{
			Field:   "view",
			Message: "view is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ToggleRowRequest struct {
	ScopeID string `json:"-"`
	UserID  string `json:"-"`
	ID      string `json:"id"`
	Checked bool   `json:"checked"`
}

func (r *ToggleRowRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ScopeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope_id",
			Message: "scope_id is required",
		})
	}

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SelectAllRequest struct {
	ScopeID    string            `json:"-"`
	UserID     string            `json:"-"`
	Filter     map[string]string `json:"filter"`
	VisibleIDs []string          `json:"visible_ids"`
}

func (r *SelectAllRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ScopeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope_id",
			Message: "scope_id is required",
		})
	}

	for key := range r.Filter {
		if validator.IsEmpty(key) {
			errs = append(errs, validator.ValidationError{
				Field:   "filter",
				Message: "filter keys must not be empty",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UnselectAllRequest struct {
	ScopeID    string   `json:"-"`
	UserID     string   `json:"-"`
	VisibleIDs []string `json:"visible_ids"`
}

func (r *UnselectAllRequest) Validate() error {
	if validator.IsEmpty(r.ScopeID) {
		return validator.ValidationErrors{{
			Field:   "scope_id",
			Message: "scope_id is required",
		}}
	}
	return nil
}

type RestoreRequest struct {
	ScopeID    string
	UserID     string
	VisibleIDs []string
}

func (r *RestoreRequest) Validate() error {
	if validator.IsEmpty(r.ScopeID) {
		return validator.ValidationErrors{{
			Field:   "scope_id",
			Message: "scope_id is required",
		}}
	}
	return nil
}

// ViewResponse is what a list view needs to redraw its checkboxes and badge.
type ViewResponse struct {
	ScopeID       string        `json:"scope_id"`
	View          string        `json:"view"`
	IDs           []string      `json:"ids"`
	Count         int           `json:"count"`
	Clicked       SelectAllFlag `json:"clicked"`
	ShowActions   bool          `json:"show_actions"`
	Ticked        []string      `json:"ticked"`
	Unticked      []string      `json:"unticked,omitempty"`
	HeaderChecked bool          `json:"header_checked"`
}
