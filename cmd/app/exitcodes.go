package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

const (
	exitSuccess       = 0
	exitCriticalError = 1
	exitLockBusy      = 76
	exitUsageError    = 2
	exitInterrupted   = 130
)

// handleCmdError prints error to stderr and sets exit code.
func handleCmdError(exitCode *int, err error) {
	if err == nil {
		*exitCode = exitSuccess
		return
	}
	fmt.Fprintln(os.Stderr, err)
	*exitCode = mapExitCode(err)
}

func mapExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	switch {
	case errors.Is(err, usecase.ErrUsage):
		return exitUsageError
	case errors.Is(err, usecase.ErrLockBusy):
		return exitLockBusy
	case errors.Is(err, usecase.ErrInterrupted):
		return exitInterrupted
	case errors.Is(err, usecase.ErrStartup), errors.Is(err, usecase.ErrEnablement):
		return exitCriticalError
	default:
		return exitCriticalError
	}
}
