package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// InvalidArgumentError represents a rejected caller input.
type InvalidArgumentError struct {
	Message string
}

func (e InvalidArgumentError) Error() string {
	if e.Message == "" {
		return "invalid argument"
	}
	return e.Message
}

func (e InvalidArgumentError) Is(target error) bool {
	_, ok := target.(InvalidArgumentError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidArgumentError)
	return ok
}

// ConflictError represents an action that clashes with the current state.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	if e.Message == "" {
		return "conflict"
	}
	return e.Message
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// ForbiddenError represents an action the requester may not repeat or perform.
type ForbiddenError struct {
	Message string
}

func (e ForbiddenError) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

func (e ForbiddenError) Is(target error) bool {
	_, ok := target.(ForbiddenError)
	if ok {
		return true
	}
	_, ok = target.(*ForbiddenError)
	return ok
}

// Sentinels for errors.Is matching.
var (
	ErrNotFound        = NotFoundError{}
	ErrInvalidArgument = InvalidArgumentError{}
	ErrConflict        = ConflictError{}
	ErrForbidden       = ForbiddenError{}
)

var (
	ErrAlreadyVoted      = ForbiddenError{Message: "already voted"}
	ErrAlreadyHasAccount = ConflictError{Message: "client already has an account"}
	ErrVariantExists     = ConflictError{Message: "a variant already exists; confirm regeneration to reset voting"}
	ErrInvalidTransition = ConflictError{Message: "onboarding stage cannot move backwards"}
	ErrBrandProfileSet   = ConflictError{Message: "brand profile already generated"}
)
