package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fundlookup/internal/logging"
	"fundlookup/internal/web"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveAddr string

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	loader := newLoader(cfg)
	loader.Start(ctx)

	handler := web.NewHandler(loader, web.OptionsFromConfig(cfg))
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	log := logging.Get(logging.CategoryHTTP)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down")
		err := server.Shutdown(shutdownCtx)
		logging.Sync()
		return err
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", cfg.Dataset.Source, addr)
	return g.Wait()
}
