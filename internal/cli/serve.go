package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hexword/internal/cardcache"
	"github.com/jmylchreest/hexword/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port        int
		defaultWord string
		cardCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Farcaster frame server",
		Long: `Run the HTTP server for the word colour frame.

Routes:
  GET  /                         frame landing page
  GET  /api/frame-image/{word}   1200x630 PNG share card
  POST /api/frame                frame button action
  POST /api/color-name           {"word": "..."} -> colour and name
  GET  /api/color/{word}?mode=   colour as JSON
  GET  /healthz                  liveness

The port is taken from --port, then PORT, then the config file (default 3003).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if defaultWord != "" {
				a.cfg.Server.DefaultWord = defaultWord
			}
			if cardCache {
				a.cfg.Server.CardCache = true
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			var cache *cardcache.Cache
			if a.cfg.Server.CardCache {
				c, err := cardcache.New(a.cfg.Server.CardCacheDir)
				if err != nil {
					return err
				}
				a.logger.Info("caching share cards", "dir", c.Dir())
				cache = c
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(server.Options{
				Addr:            a.cfg.Addr(),
				DefaultWord:     a.cfg.Server.DefaultWord,
				Mode:            a.cfg.ColourMode(),
				Namer:           a.modelNamer(ctx),
				NameTimeout:     a.cfg.Namer.Timeout,
				Cache:           cache,
				Logger:          a.logger,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
			})
			if err != nil {
				return err
			}

			return srv.Run(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port")
	cmd.Flags().StringVar(&defaultWord, "default-word", "", "word shown before any input")
	cmd.Flags().BoolVar(&cardCache, "card-cache", false, "cache rendered share cards on disk")

	return cmd
}
