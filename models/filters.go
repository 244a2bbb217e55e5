package models

import "github.com/pkg/errors"

const FilterAll = "all"

// StatusFilter selects completions by status. "awaiting_payment" is an alias for approved.
type StatusFilter string

const StatusFilterAwaitingPayment StatusFilter = "awaiting_payment"

func (f StatusFilter) Normalize() StatusFilter {
	switch f {
	case "":
		return FilterAll
	case StatusFilterAwaitingPayment:
		return StatusFilter(CompletionStatusApproved)
	}
	return f
}

func (f StatusFilter) Validate() error {
	n := f.Normalize()
	if n == FilterAll || CompletionStatus(n).IsValid() {
		return nil
	}
	return errors.Errorf("unknown status filter: %v", string(f))
}

// Status returns the status to filter on, false means no filtering.
func (f StatusFilter) Status() (CompletionStatus, bool) {
	n := f.Normalize()
	if n == FilterAll {
		return "", false
	}
	return CompletionStatus(n), true
}

func (f StatusFilter) IsAll() bool {
	return f.Normalize() == FilterAll
}

type PriorityFilter string

func (f PriorityFilter) Normalize() PriorityFilter {
	if f == "" {
		return FilterAll
	}
	return f
}

func (f PriorityFilter) Validate() error {
	n := f.Normalize()
	if n == FilterAll || TaskPriority(n).IsValid() {
		return nil
	}
	return errors.Errorf("unknown priority filter: %v", string(f))
}

func (f PriorityFilter) Priority() (TaskPriority, bool) {
	n := f.Normalize()
	if n == FilterAll {
		return "", false
	}
	return TaskPriority(n), true
}

func (f PriorityFilter) IsAll() bool {
	return f.Normalize() == FilterAll
}

// TaskStateFilter selects tasks by their active flag.
type TaskStateFilter string

const (
	TaskStateActive   TaskStateFilter = "active"
	TaskStateInactive TaskStateFilter = "inactive"
)

func (f TaskStateFilter) Normalize() TaskStateFilter {
	if f == "" {
		return FilterAll
	}
	return f
}

func (f TaskStateFilter) Validate() error {
	switch f.Normalize() {
	case FilterAll, TaskStateActive, TaskStateInactive:
		return nil
	}
	return errors.Errorf("unknown task status filter: %v", string(f))
}

// IsActive returns the active flag to filter on, false means no filtering.
func (f TaskStateFilter) IsActive() (bool, bool) {
	switch f.Normalize() {
	case TaskStateActive:
		return true, true
	case TaskStateInactive:
		return false, true
	}
	return false, false
}

func (f TaskStateFilter) IsAll() bool {
	return f.Normalize() == FilterAll
}
