package apperrors

import (
	"github.com/pkg/errors"
)

var (
	ErrForbidden           = errors.New("access denied")
	ErrUnauthorized        = errors.New("invalid email or password")
	ErrNotFound            = errors.New("record not found")
	ErrInvalidStatus       = errors.New("invalid approval status provided")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrDuplicateSubmission = errors.New("you have already completed this task on the selected date")
	ErrAlreadyReset        = errors.New("weekly reset already performed today")
	ErrResetFailed         = errors.New("error during reset")
)

// IsSoft reports whether err is a notice for the user rather than a failure.
func IsSoft(err error) bool {
	return errors.Is(err, ErrDuplicateSubmission) || errors.Is(err, ErrAlreadyReset)
}

// ResetFailedError carries the storage error that rolled back a weekly reset.
type ResetFailedError struct {
	Cause error
}

func NewResetFailed(cause error) error {
	return &ResetFailedError{Cause: cause}
}

func (e *ResetFailedError) Error() string {
	return ErrResetFailed.Error() + ": " + e.Cause.Error()
}

func (e *ResetFailedError) Is(target error) bool {
	return target == ErrResetFailed
}

func (e *ResetFailedError) Unwrap() error {
	return e.Cause
}
