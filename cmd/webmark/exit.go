package main

import "fmt"

// exitCodeError carries a specific process exit code out of a command. The
// wrapped error may be nil when the command already printed its own summary.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

const (
	exitPartialFailure = 2
	exitInterrupted    = 130
)
