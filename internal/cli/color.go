package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hexword/internal/colour"
	"github.com/jmylchreest/hexword/internal/frame"
	"github.com/jmylchreest/hexword/internal/history"
)

const swatchWidth = 6

var errEmptyWord = errors.New("word cannot be empty")

func newColorCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "color <word>...",
		Aliases: []string{"colour"},
		Short:   "Print the colour for one or more words",
		Long: `Print the hex, RGB and HSL colour for each word.

Each argument is one word; quote arguments containing spaces. Surrounding
whitespace is trimmed before hashing.

Examples:
  hexword color test
  hexword color --mode enhanced Aurora Nebula
  hexword color "hello world" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]colour.Result, 0, len(args))
			for _, arg := range args {
				word := strings.TrimSpace(arg)
				if word == "" {
					return errEmptyWord
				}
				results = append(results, colour.ColorFor(word, a.cfg.ColourMode()))
			}

			a.record(cmd.Context(), results)

			return a.printResults(cmd.OutOrStdout(), results, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

func newRandomCmd(a *app) *cobra.Command {
	var (
		count  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print the colour for a random word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			results := make([]colour.Result, 0, count)
			for range count {
				results = append(results, colour.ColorFor(frame.RandomWord(), a.cfg.ColourMode()))
			}

			a.record(cmd.Context(), results)

			return a.printResults(cmd.OutOrStdout(), results, asJSON)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of random words")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

// record adds results to history. Failures are logged, not returned, so
// colour output never depends on the history file.
func (a *app) record(ctx context.Context, results []colour.Result) {
	if a.noHistory {
		return
	}
	store, err := a.historyStore()
	if err != nil {
		a.logger.Warn("history unavailable", "error", err)
		return
	}
	for _, res := range results {
		if err := store.Add(ctx, history.NewEntry(res.Word, res.Hex, time.Now())); err != nil {
			a.logger.Warn("failed to record history", "word", res.Word, "error", err)
			return
		}
	}
	a.logger.Debug("history updated", "path", store.Path(), "added", len(results))
}

// printResults writes one line per result, or a JSON document.
func (a *app) printResults(w io.Writer, results []colour.Result, asJSON bool) error {
	if asJSON {
		if len(results) == 1 {
			return writeJSON(w, results[0])
		}
		return writeJSON(w, results)
	}

	swatch := a.useSwatch(w)
	for _, res := range results {
		line := fmt.Sprintf("%s  %s  %s  %s", res.Word, res.Hex, res.RGB, res.HSL)
		if swatch {
			line = colour.Swatch(res.RGB, swatchWidth) + "  " + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
