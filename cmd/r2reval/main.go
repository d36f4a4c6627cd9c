/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Command r2reval scores RAG completions with a sampled evaluation provider
// and sends one-off prompts to the supported language model backends.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Everything evaluated
	ExitFailed  = 1 // One or more batch evaluations failed
	ExitError   = 2 // Configuration or runtime error
)

// FailuresError reports that a batch ran to completion but some of its
// evaluations returned an error.
type FailuresError struct {
	Failed int
	Total  int
}

func (e *FailuresError) Error() string {
	return fmt.Sprintf("%d of %d evaluations failed", e.Failed, e.Total)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	cancel()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(os.Stderr, err)

	var failures *FailuresError
	if errors.As(err, &failures) {
		return ExitFailed
	}
	return ExitError
}
