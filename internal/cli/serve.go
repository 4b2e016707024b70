package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
	"github.com/nguyentantai21042004/meet-captions/internal/config"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
	"github.com/nguyentantai21042004/meet-captions/internal/processor"
	"github.com/nguyentantai21042004/meet-captions/internal/server"
	"github.com/nguyentantai21042004/meet-captions/internal/session"
	"github.com/nguyentantai21042004/meet-captions/internal/watcher"
)

func NewServeCmd(deps *Dependencies) *cobra.Command {
	var addr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the caption session server",
		Long:  "Serve the session API and caption websocket. With --watch, capture files dropped into the inbox are processed too.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			log := deps.Logger
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info(ctx, "Grace period: %s, session TTL: %s", cfg.GracePeriod(), cfg.SessionTTL())

			mgr := session.New(caption.Options{GracePeriod: cfg.GracePeriod()}, cfg.SessionTTL(), nil, log)
			srv := server.New(mgr, server.Options{RecordDir: cfg.Server.RecordDir}, log)

			components := []func(context.Context) error{
				func(ctx context.Context) error {
					mgr.Run(ctx, time.Minute)
					return nil
				},
				func(ctx context.Context) error {
					return srv.Start(ctx, cfg.Server.Addr)
				},
			}

			if watch {
				w, err := newInboxWatcher(cfg, deps)
				if err != nil {
					return err
				}
				defer w.Stop()
				components = append(components, w.Start)
			}

			log.Info(ctx, "Press Ctrl+C to stop")
			return runComponents(ctx, stop, log, components...)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Also process capture files dropped into paths.inbox")

	return cmd
}

// runComponents runs every component until ctx is done or one of them fails,
// then cancels the rest and waits for all of them to return. A component that
// returns nil early does not stop the others.
func runComponents(ctx context.Context, stop context.CancelFunc, log logger.Logger, components ...func(context.Context) error) error {
	errChan := make(chan error, len(components))
	for _, run := range components {
		go func() {
			errChan <- run(ctx)
		}()
	}

	var firstErr error
	pending := len(components)
wait:
	for pending > 0 {
		select {
		case <-ctx.Done():
			log.Info(ctx, "Shutdown signal received")
			break wait
		case err := <-errChan:
			pending--
			if err != nil && !errors.Is(err, context.Canceled) {
				firstErr = err
				break wait
			}
		}
	}

	stop()
	log.Info(ctx, "Shutting down gracefully...")
	for ; pending > 0; pending-- {
		if err := <-errChan; err != nil && !errors.Is(err, context.Canceled) && firstErr == nil {
			firstErr = err
		}
	}
	log.Info(ctx, "Shutdown complete")
	return firstErr
}

func newInboxWatcher(cfg *config.Config, deps *Dependencies) (watcher.Watcher, error) {
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	proc := processor.New(cfg, newSummarizer(deps), deps.Logger)
	w, err := watcher.New(cfg.Paths.Inbox, proc.Process, deps.Logger, cfg.Performance.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return w, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
