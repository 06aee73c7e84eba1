// Package cli provides the command-line interface for hexword.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/hexword/internal/config"
	"github.com/jmylchreest/hexword/internal/history"
	"github.com/jmylchreest/hexword/internal/logging"
	"github.com/jmylchreest/hexword/internal/version"
)

// Swatch display modes for --swatch.
const (
	swatchAuto   = "auto"
	swatchAlways = "always"
	swatchNever  = "never"
)

// app carries state shared by every command in one root command tree.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	jsonLogs   bool
	mode       string
	swatch     string
	noHistory  bool

	cfg    *config.Config
	logger hclog.Logger
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the hexword command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "hexword",
		Short: "Turn any word into a unique hex colour",
		Long: `hexword deterministically maps a word to a display colour.

The same word always produces the same colour. Colours can be printed as
hex, RGB and HSL, given a poetic name, rendered to a share card, or served
as a Farcaster frame.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/hexword/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.BoolVar(&a.jsonLogs, "log-json", false, "write logs as JSON")
	flags.StringVarP(&a.mode, "mode", "m", "", "colour mode (basic, enhanced); overrides config")
	flags.StringVar(&a.swatch, "swatch", swatchAuto, "show colour swatches (auto, always, never)")
	flags.BoolVar(&a.noHistory, "no-history", false, "do not record generated colours")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newColorCmd(a),
		newRandomCmd(a),
		newNameCmd(a),
		newImageCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = logging.New(logging.Options{
		Verbose: a.verbose,
		Quiet:   a.quiet,
		JSON:    a.jsonLogs,
		Output:  cmd.ErrOrStderr(),
	})

	path := a.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			a.logger.Debug("no default config path", "error", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.mode != "" {
		cfg.Mode = a.mode
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --mode: %w", err)
		}
	}
	a.cfg = cfg

	a.logger.Debug("configuration loaded", "path", path, "mode", cfg.Mode)

	switch a.swatch {
	case swatchAuto, swatchAlways, swatchNever:
	default:
		return fmt.Errorf("invalid --swatch %q (want auto, always or never)", a.swatch)
	}

	return nil
}

// historyStore opens the configured history file.
func (a *app) historyStore() (*history.JSONFileStore, error) {
	path, err := a.cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.NewJSONFileStore(path, a.cfg.History.Capacity), nil
}

// useSwatch reports whether ANSI swatches should be written to w.
func (a *app) useSwatch(w io.Writer) bool {
	switch a.swatch {
	case swatchAlways:
		return true
	case swatchNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
