package main

import (
	"log"

	"github.com/spf13/cobra"
)

// newStepLogger returns a *log.Logger that writes the scheduler's
// step/queue-size trace to the command's error stream.
func newStepLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "eroth: ", 0)
}
