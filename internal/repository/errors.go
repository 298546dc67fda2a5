package repository

import "errors"

var (
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrRowWidth         = errors.New("unexpected row width")
)
