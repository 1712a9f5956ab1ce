package task

import (
	"time"
)

type TaskOption func(*Task)

func WithDetails(details string) TaskOption {
	return func(task *Task) {
		task.Details = details
	}
}

func WithDeadline(deadline time.Time) TaskOption {
	if deadline.IsZero() {
		return nil
	}
	return func(task *Task) {
		task.Deadline = deadline
	}
}

func WithPriority(priority Priority) TaskOption {
	return func(task *Task) {
		task.PriorityID = priority
	}
}

// WithStatus с nil ничего не меняет.
func WithStatus(status *Status) TaskOption {
	if status == nil {
		return nil
	}
	return func(task *Task) {
		task.StatusID = *status
	}
}

func Apply(t *Task, options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}
