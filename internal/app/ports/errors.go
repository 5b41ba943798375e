package ports

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownAction = errors.New("unknown action")
	ErrNoMoreTicks   = errors.New("no more ticks")
)
