package bulk

import "errors"

var (
	ErrEmptySelection      = errors.New("no rows selected")
	ErrUnknownEntity       = errors.New("unknown entity")
	ErrActionNotSupported  = errors.New("action not supported for entity")
	ErrUnknownFilterColumn = errors.New("unknown filter column")
)
