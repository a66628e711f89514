package errs

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record already exists")
	ErrValidation     = errors.New("validation failed")

	ErrInvalidEmployeeStatus = errors.New("invalid employee status")
	ErrStatusUnchanged       = errors.New("employee already has this status")
	ErrEmployeeTerminated    = errors.New("terminated employee cannot change status")

	ErrNoUnitOfWork          = errors.New("no unit of work bound to context")
	ErrOutboxMessageTerminal = errors.New("outbox message is in a terminal status")
)
