package schedule

import (
	"errors"
	"fmt"
)

// Validation failures, rejected before any store write.
var (
	ErrMissingTime = errors.New("schedule: start and end times are required")
	ErrBadTime     = errors.New("schedule: times must look like H:MM or HH:MM")
	ErrNoEmployee  = errors.New("schedule: no employee selected")
)

// DateError tags a per-date failure from a multi-date save. One date
// failing never aborts the sibling dates.
type DateError struct {
	Date string
	Err  error
}

func (e DateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Date, e.Err)
}

func (e DateError) Unwrap() error {
	return e.Err
}
