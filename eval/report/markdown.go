/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"
	"slices"

	"chainguard.dev/r2r/eval"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// newTable creates a markdown table writer with left-aligned cells.
func newTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// Markdown writes the call totals followed by a per-metric score table.
func (s Summary) Markdown(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "## Evaluation Summary\n\n%d calls: %d forwarded, %d skipped, %d failed\n\n",
		s.Total(), s.Forwarded, s.Skipped, s.Failed); err != nil {
		return err
	}
	if len(s.Metrics) == 0 {
		_, err := fmt.Fprintln(w, "No scores recorded.")
		return err
	}

	table := newTable([]string{"Metric", "Count", "Mean", "Min", "Max"}, w)
	for _, m := range s.Metrics {
		if err := table.Append([]string{
			m.Name,
			fmt.Sprintf("%d", m.Count),
			fmt.Sprintf("%.3f", m.Mean),
			fmt.Sprintf("%.3f", m.Min),
			fmt.Sprintf("%.3f", m.Max),
		}); err != nil {
			return fmt.Errorf("appending row for %s: %w", m.Name, err)
		}
	}
	return table.Render()
}

// WriteResult renders one evaluation result as a markdown table, one row per
// metric in name order. Fields a backend did not report are left blank.
func WriteResult(w io.Writer, res eval.Result) error {
	if len(res) == 0 {
		_, err := fmt.Fprintln(w, "No metrics returned.")
		return err
	}

	names := make([]string, 0, len(res))
	for name := range res {
		names = append(names, name)
	}
	slices.Sort(names)

	table := newTable([]string{"Metric", "Score", "Label", "Reason"}, w)
	for _, name := range names {
		m := res[name]
		if err := table.Append([]string{
			name,
			formatScore(m["score"]),
			stringField(m, "label"),
			stringField(m, "reason"),
		}); err != nil {
			return fmt.Errorf("appending row for %s: %w", name, err)
		}
	}
	return table.Render()
}

func formatScore(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.3f", s)
	default:
		return fmt.Sprint(s)
	}
}

func stringField(m eval.Metric, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
