package types

import "errors"

// Error taxonomy shared by the local store, backups, remote sync and the facade.
var (
	ErrParse      = errors.New("parse error")
	ErrValidation = errors.New("validation error")
	ErrRemote     = errors.New("remote error")
	ErrNotFound   = errors.New("not found")
)

// Task and request level errors.
var (
	ErrEmptyLabel       = errors.New("task label is empty")
	ErrDuplicateKey     = errors.New("task key already exists")
	ErrTaskNotFound     = errors.New("task not found")
	ErrBuiltinTask      = errors.New("built-in task cannot be removed")
	ErrInvalidColor     = errors.New("invalid task color")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidSlot      = errors.New("invalid backup slot")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNotAuthenticated = errors.New("not authenticated")
)
