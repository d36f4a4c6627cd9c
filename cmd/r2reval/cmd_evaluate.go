/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"chainguard.dev/r2r/eval"
	"chainguard.dev/r2r/eval/providers"
	"chainguard.dev/r2r/eval/report"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds one JSONL record; completions can be long.
const maxLineSize = 10 << 20

type evaluateOptions struct {
	query       string
	contextText string
	completion  string

	input       string
	concurrency int

	provider     string
	samplingRate float64
	seed         uint64
	output       string
}

// triple is one line of a batch input file.
type triple struct {
	Query      string `json:"query"`
	Context    string `json:"context"`
	Completion string `json:"completion"`
}

// outcome is the printable result of one Evaluate call.
type outcome struct {
	Line      int         `json:"line,omitempty" yaml:"line,omitempty"`
	Forwarded bool        `json:"forwarded" yaml:"forwarded"`
	Result    eval.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type batchOutput struct {
	Results []outcome      `json:"results" yaml:"results"`
	Summary report.Summary `json:"summary" yaml:"summary"`
}

func newEvaluateCommand() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score completions with the configured evaluation provider",
		Long: `Score a single (query, context, completion) triple given by flags, or a
batch read from a JSONL file with one {"query", "context", "completion"}
object per line ("-" reads standard input).

Each call is forwarded to the provider with probability equal to the
sampling rate. Calls that are not forwarded are reported as skipped.`,
		Example: `  r2reval evaluate --query "What is RAG?" --context "..." --completion "..."
  r2reval evaluate --input traces.jsonl --concurrency 8 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.query, "query", "", "User query")
	f.StringVar(&opts.contextText, "context", "", "Retrieved context supplied to the model")
	f.StringVar(&opts.completion, "completion", "", "Model completion to score")
	f.StringVarP(&opts.input, "input", "i", "", "JSONL file of triples to evaluate")
	f.IntVarP(&opts.concurrency, "concurrency", "c", 4, "Concurrent evaluations in batch mode")
	f.StringVar(&opts.provider, "provider", "", "Override EVAL_PROVIDER")
	f.Float64Var(&opts.samplingRate, "sampling-rate", 1.0, "Override EVAL_SAMPLING_RATE")
	f.Uint64Var(&opts.seed, "seed", 0, "Seed the sampler for reproducible runs")
	f.StringVarP(&opts.output, "output", "o", formatTable, "Output format: table, json or yaml")

	cmd.MarkFlagsMutuallyExclusive("input", "query")
	cmd.MarkFlagsMutuallyExclusive("input", "context")
	cmd.MarkFlagsMutuallyExclusive("input", "completion")

	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	if err := checkFormat(opts.output, formatTable, formatJSON, formatYAML); err != nil {
		return err
	}
	if opts.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", opts.concurrency)
	}

	d, err := newDispatcher(cmd, opts)
	if err != nil {
		return err
	}

	if opts.input != "" {
		return runBatch(cmd, d, opts)
	}
	return runSingle(cmd, d, opts)
}

// newDispatcher loads the provider configuration from the environment, with
// any flags given on the command line taking precedence.
func newDispatcher(cmd *cobra.Command, opts *evaluateOptions) (eval.Interface, error) {
	overrides := map[string]string{}
	if cmd.Flags().Changed("provider") {
		overrides["EVAL_PROVIDER"] = opts.provider
	}
	if cmd.Flags().Changed("sampling-rate") {
		overrides["EVAL_SAMPLING_RATE"] = strconv.FormatFloat(opts.samplingRate, 'g', -1, 64)
	}

	cfg, err := providers.LoadFrom(cmd.Context(), envconfig.MultiLookuper(
		envconfig.MapLookuper(overrides),
		envconfig.OsLookuper(),
	))
	if err != nil {
		return nil, err
	}

	var evalOpts []eval.Option
	if cmd.Flags().Changed("seed") {
		evalOpts = append(evalOpts, eval.WithRandSource(eval.NewSource(opts.seed)))
	}

	d, err := providers.New(cfg, evalOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating evaluator: %w", err)
	}
	clog.FromContext(cmd.Context()).With("provider", d.Provider()).With("sampling_rate", d.SamplingRate()).Debug("Evaluator ready")
	return d, nil
}

func runSingle(cmd *cobra.Command, d eval.Interface, opts *evaluateOptions) error {
	res, forwarded, err := d.Evaluate(cmd.Context(), opts.query, opts.contextText, opts.completion)
	if err != nil {
		return fmt.Errorf("evaluating with %s: %w", d.Provider(), err)
	}

	out := cmd.OutOrStdout()
	if opts.output != formatTable {
		return encode(out, opts.output, outcome{Forwarded: forwarded, Result: res})
	}
	if !forwarded {
		_, err := fmt.Fprintln(out, "skipped")
		return err
	}
	return report.WriteResult(out, res)
}

func runBatch(cmd *cobra.Command, d eval.Interface, opts *evaluateOptions) error {
	ctx := cmd.Context()
	log := clog.FromContext(ctx)

	items, err := readInput(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}
	log.With("count", len(items)).With("concurrency", opts.concurrency).Info("Evaluating batch")

	results := make([]outcome, len(items))
	collector := report.NewCollector()

	var g errgroup.Group
	g.SetLimit(opts.concurrency)
	for i, it := range items {
		g.Go(func() error {
			res, forwarded, err := d.Evaluate(ctx, it.Query, it.Context, it.Completion)
			collector.Record(res, forwarded, err)
			results[i] = outcome{Line: it.line, Forwarded: forwarded, Result: res}
			if err != nil {
				results[i].Error = err.Error()
				log.With("line", it.line).Warnf("Evaluation failed: %v", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	summary := collector.Summary()
	out := cmd.OutOrStdout()
	switch opts.output {
	case formatTable:
		err = summary.Markdown(out)
	default:
		err = encode(out, opts.output, batchOutput{Results: results, Summary: summary})
	}
	if err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	if summary.Failed > 0 {
		return &FailuresError{Failed: summary.Failed, Total: summary.Total()}
	}
	return nil
}

type numberedTriple struct {
	triple
	line int
}

// readInput parses a JSONL file, or stdin when path is "-". Blank lines are
// ignored.
func readInput(stdin io.Reader, path string) ([]numberedTriple, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var items []numberedTriple
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var t triple
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		items = append(items, numberedTriple{triple: t, line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("input contains no triples")
	}
	return items, nil
}

