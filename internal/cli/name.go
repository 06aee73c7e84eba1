package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/hexword/internal/colour"
	"github.com/jmylchreest/hexword/internal/namer"
)

// maxConcurrentNames bounds parallel model calls from one command.
const maxConcurrentNames = 4

// NamedColour is a colour result with its display name.
type NamedColour struct {
	colour.Result
	Name string `json:"name"`
}

func newNameCmd(a *app) *cobra.Command {
	var (
		offline bool
		timeout time.Duration
		model   string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "name <word>...",
		Short: "Give the colour of each word a poetic name",
		Long: `Name the colour of each word with a Gemini model.

An API key is read from GEMINI_API_KEY, gemini_API or GOOGLE_API_KEY (or
namer.api_key in the config file). Without a key, or when the model fails
or times out, a name is chosen from a built-in table.

Examples:
  hexword name Aurora
  hexword name --offline Cosmic Nebula
  hexword name --model gemini-2.5-flash test --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if model != "" {
				a.cfg.Namer.Model = model
			}
			if timeout > 0 {
				a.cfg.Namer.Timeout = timeout
			}

			var n namer.Namer
			if offline {
				n = namer.Fallback{}
			} else {
				n = a.colourNamer(ctx)
			}

			results := make([]colour.Result, 0, len(args))
			for _, arg := range args {
				word := strings.TrimSpace(arg)
				if word == "" {
					return errEmptyWord
				}
				results = append(results, colour.ColorFor(word, a.cfg.ColourMode()))
			}

			named, err := nameAll(ctx, n, results)
			if err != nil {
				return err
			}

			a.record(ctx, results)

			out := cmd.OutOrStdout()
			if asJSON {
				if len(named) == 1 {
					return writeJSON(out, named[0])
				}
				return writeJSON(out, named)
			}

			swatch := a.useSwatch(out)
			for _, nc := range named {
				line := fmt.Sprintf("%s  %s  %q", nc.Word, nc.Hex, nc.Name)
				if swatch {
					line = colour.SwatchWithText(nc.RGB, nc.Hex, 9) + "  " + line
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "use the built-in name table only")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "model call timeout (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

// colourNamer builds the configured namer wrapped with timeout and fallback.
func (a *app) colourNamer(ctx context.Context) namer.Namer {
	return namer.WithFallback(a.modelNamer(ctx), a.cfg.Namer.Timeout, a.logger)
}

// modelNamer returns the Gemini namer, or nil when it cannot be created
// (for example without an API key).
func (a *app) modelNamer(ctx context.Context) namer.Namer {
	gemini, err := namer.NewGemini(ctx, namer.GeminiOptions{
		Model:   a.cfg.Namer.Model,
		Backend: a.cfg.Namer.Backend,
		APIKey:  a.cfg.Namer.APIKey,
		Logger:  a.logger,
	})
	if err != nil {
		a.logger.Info("AI naming unavailable, using built-in names", "reason", err)
		return nil
	}

	a.logger.Debug("AI naming enabled", "model", gemini.Model(), "backend", a.cfg.Namer.Backend)
	return gemini
}

// nameAll names results concurrently, preserving order.
func nameAll(ctx context.Context, n namer.Namer, results []colour.Result) ([]NamedColour, error) {
	named := make([]NamedColour, len(results))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentNames)

	for i, res := range results {
		g.Go(func() error {
			name, err := n.Name(ctx, namer.RequestFor(res))
			if err != nil {
				return fmt.Errorf("failed to name %q: %w", res.Word, err)
			}
			named[i] = NamedColour{Result: res, Name: name}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return named, nil
}
