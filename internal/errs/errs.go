//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package errs holds the failure taxonomy shared by every stage of the pipeline.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrDataLoad             = errors.New("data load error")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrEmptyResult          = errors.New("empty result")
	ErrNonConvergence       = errors.New("non-convergence")
	ErrDivisionUndefined    = errors.New("division undefined")
)

// StageError - a sentinel plus the stage that raised it and what went wrong there
type StageError struct {
	Stage string
	Err   error
	Msg   string
}

func (e *StageError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Err.Error(), e.Msg)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// New - wrap a sentinel; the message is a format string
func New(sentinel error, stage string, format string, a ...any) *StageError {
	return &StageError{
		Stage: stage,
		Err:   sentinel,
		Msg:   fmt.Sprintf(format, a...),
	}
}

// Wrap - attach a stage and a sentinel to a lower level error (a driver error, a parse error...)
func Wrap(sentinel error, stage string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   fmt.Errorf("%w: %w", sentinel, err),
		Msg:   "",
	}
}

// Config - shorthand for the most common sentinel
func Config(stage string, format string, a ...any) *StageError {
	return New(ErrInvalidConfiguration, stage, format, a...)
}

// Stage - the name of the stage that failed, or "" if err did not come from a stage
func Stage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
