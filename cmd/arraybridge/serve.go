package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/arraybridge/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.Listen = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.open(ctx, a.log)
			if err != nil {
				return err
			}
			defer s.Close(context.Background())

			srv := &http.Server{
				Addr: a.cfg.Listen,
				Handler: httpapi.NewMux(httpapi.Options{
					Builder:     s.builder,
					Converter:   s.conv,
					Gatherer:    s.reg,
					Logger:      a.log.Named("http"),
					CORSOrigins: a.cfg.CORSOrigins,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				a.log.Info("listening", zap.String("addr", srv.Addr), zap.String("device", s.dev.Name()))
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.log.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	return cmd
}
