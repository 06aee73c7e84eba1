package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hexword/internal/colour"
)

func newHistoryCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently generated colours",
		Long: `List recently generated colours, newest first.

Each word appears once; generating a word again moves it to the top. The
list keeps the most recent entries up to history.capacity (default 12).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.historyStore()
			if err != nil {
				return err
			}
			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No history yet.")
				return nil
			}

			swatch := a.useSwatch(out)
			headers := []string{"#", "WORD", "HEX", "WHEN"}
			if swatch {
				headers = append([]string{""}, headers...)
			}
			table := NewTable(headers)
			table.SetColumnMaxWidth(len(headers)-3, 32)

			now := time.Now()
			for i, e := range entries {
				row := []string{strconv.Itoa(i + 1), e.Word, e.Hex, since(now, e.Timestamp)}
				if swatch {
					cell := ""
					if rgb, err := colour.ParseHex(e.Hex); err == nil {
						cell = colour.Swatch(rgb, 4)
					}
					row = append([]string{cell}, row...)
				}
				table.AddRow(row)
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.historyStore()
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			if !a.quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the history file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.cfg.HistoryPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

// since formats the age of t relative to now.
func since(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Local().Format("2006-01-02")
	}
}
