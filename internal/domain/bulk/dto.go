package bulk

import "github.com/horilla-hris/hris-bulk-go/internal/pkg/validator"

// BulkRequest is the decoded {csrfmiddlewaretoken, ids} form of a bulk endpoint.
type BulkRequest struct {
	Module string
	Entity string
	IDs    []string
	UserID string
}

func (r *BulkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Module) {
		errs = append(errs, validator.ValidationError{
			Field:   "module",
			Message: "module is required",
		})
	}

	if validator.IsEmpty(r.Entity) {
		errs = append(errs, validator.ValidationError{
			Field:   "entity",
			Message: "entity is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	// Checked after the path fields so a bad URL is reported first.
	if len(r.IDs) == 0 {
		return ErrEmptySelection
	}

	for _, id := range r.IDs {
		if validator.IsEmpty(id) {
			return validator.ValidationErrors{{
				Field:   "ids",
				Message: "ids must not contain empty identifiers",
			}}
		}
	}

	return nil
}

type ExportRequest = BulkRequest

type SelectRequest struct {
	Module string
	Entity string
	Filter map[string]string
}

func (r *SelectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Module) {
		errs = append(errs, validator.ValidationError{
			Field:   "module",
			Message: "module is required",
		})
	}

	if validator.IsEmpty(r.Entity) {
		errs = append(errs, validator.ValidationError{
			Field:   "entity",
			Message: "entity is required",
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

type SelectIDsResponse struct {
	IDs        []string `json:"ids"`
	TotalCount int      `json:"total_count"`
}
