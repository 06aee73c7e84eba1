package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hexword/internal/colour"
	"github.com/jmylchreest/hexword/internal/namer"
	"github.com/jmylchreest/hexword/internal/render"
)

func newImageCmd(a *app) *cobra.Command {
	var (
		output string
		name   string
		withAI bool
	)

	cmd := &cobra.Command{
		Use:   "image <word>",
		Short: "Render the share card for a word as PNG",
		Long: `Render the 1200x630 share card for a word.

The card shows the word, its colour, hex and RGB values, and an optional
colour name. Use --name to set the name or --ai to ask the configured
model (falling back to the built-in table).

Examples:
  hexword image Aurora
  hexword image Aurora -o aurora.png --ai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			word := strings.TrimSpace(args[0])
			if word == "" {
				return errEmptyWord
			}
			res := colour.ColorFor(word, a.cfg.ColourMode())

			if withAI && name == "" {
				n, err := a.colourNamer(ctx).Name(ctx, namer.RequestFor(res))
				if err != nil {
					return err
				}
				name = n
			}

			if output == "" {
				output = strings.TrimPrefix(res.Hex, "#") + ".png"
			}

			renderer, err := render.NewRenderer()
			if err != nil {
				return err
			}

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := renderer.EncodePNG(f, render.CardFor(res, name)); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			a.record(ctx, []colour.Result{res})

			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s %s)\n", output, res.Word, res.Hex)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <hex>.png)")
	cmd.Flags().StringVar(&name, "name", "", "colour name to print on the card")
	cmd.Flags().BoolVar(&withAI, "ai", false, "name the colour with the configured model")

	return cmd
}
