package user

import "errors"

var (
	ErrUserIDRequired          = errors.New("user_id claim is missing or invalid")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
