package selection

import "errors"

var (
	ErrScopeNotFound  = errors.New("selection scope not found")
	ErrScopeForbidden = errors.New("selection scope belongs to another user")
	ErrUnknownView    = errors.New("unknown list view")
	ErrMalformedIDs   = errors.New("malformed ids payload")
)
