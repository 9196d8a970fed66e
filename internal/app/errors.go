package app

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrRebuildQueueDown = errors.New("rebuild queue is not configured")
)
