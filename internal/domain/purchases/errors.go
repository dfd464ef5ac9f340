package purchases

import "errors"

var (
	ErrInvalidRoleConfig   = errors.New("limited-time role requires both a quantity and a unit")
	ErrUnsupportedTimeUnit = errors.New("unsupported time unit")
	ErrInvalidUserID       = errors.New("invalid discord user id")
	ErrDuplicateSignature  = errors.New("transaction signature already recorded")
)
