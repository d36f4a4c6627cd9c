/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"log/slog"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "r2reval",
		Short: "Sampled evaluation of RAG completions",
		Long: `r2reval forwards (query, context, completion) triples to an evaluation
provider (deepeval or parea), sampling a configurable fraction of calls.

The provider is configured from the environment:

  EVAL_PROVIDER        deepeval | parea (required)
  EVAL_SAMPLING_RATE   fraction of calls forwarded, in [0, 1] (default 1.0)
  EVAL_TIMEOUT         per-call timeout (default 60s)
  DEEPEVAL_*           DeepEval settings
  PAREA_*              Parea settings`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debug := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if *debug {
			level = slog.LevelDebug
		}
		logger := clog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		cmd.SetContext(clog.WithLogger(cmd.Context(), logger))
	}

	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newProvidersCommand())
	cmd.AddCommand(newCompleteCommand())

	return cmd
}
