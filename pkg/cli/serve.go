package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/stresscheck/pkg/cli/config"
	httpctrl "github.com/secmon-lab/stresscheck/pkg/controller/http"
	"github.com/secmon-lab/stresscheck/pkg/service/font"
	"github.com/secmon-lab/stresscheck/pkg/usecase"
	"github.com/secmon-lab/stresscheck/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var fontCfg config.Font

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("STRESSCHECK_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, fontCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server with the questionnaire form",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			q, err := config.LoadQuestionnaire()
			if err != nil {
				return goerr.Wrap(err, "failed to load questionnaire")
			}

			fonts := fontCfg.Configure()
			// The font is read per request; a missing file only fails report generation.
			if f, err := fonts.Load(ctx); err != nil {
				logging.Default().Warn("Font is not available yet, report generation will fail until it is installed",
					"font", fontCfg, "error", err.Error())
			} else if err := font.Covers(f, q.Title()); err != nil {
				logging.Default().Warn("Font lacks Japanese glyphs, report generation will fail",
					"font", fontCfg, "error", err.Error())
			}

			uc := usecase.New(q, fonts)

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "font", fontCfg)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
