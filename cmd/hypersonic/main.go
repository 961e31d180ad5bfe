package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brensch/hypersonic/config"
	"github.com/brensch/hypersonic/feed"
	"github.com/brensch/hypersonic/logging"
	"github.com/brensch/hypersonic/store"
)

func main() {
	os.Exit(start(os.Args[1:]))
}

// start owns every deferred cleanup so they run before the process exits.
func start(args []string) int {
	fs := flag.NewFlagSet("hypersonic", flag.ContinueOnError)
	cfgPath := fs.String("config", os.Getenv("HYPERSONIC_CONFIG"), "Optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("config: %v", err)
		return 2
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Printf("logger: %v", err)
		return 2
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("agent stopped", zap.Error(err))
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var (
		in  io.Reader = os.Stdin
		out io.Writer = os.Stdout
	)
	if cfg.Feed.Mode == config.FeedWebsocket {
		sock, err := feed.DialSocket(ctx, cfg.Feed.URL)
		if err != nil {
			return err
		}
		defer sock.Close()
		// Unblocks a pending read when the process is asked to stop.
		stopWatch := context.AfterFunc(ctx, func() { _ = sock.Close() })
		defer stopWatch()
		in, out = sock, sock
		logger.Info("connected to feed", zap.String("url", cfg.Feed.URL))
	}

	var rec *store.Recorder
	if cfg.Record.Enabled {
		var err error
		rec, err = store.NewRecorder(cfg.Record.Dir, uuid.New())
		if err != nil {
			return fmt.Errorf("recorder: %w", err)
		}
		logger.Info("recording session",
			zap.Stringer("session", rec.Session()),
			zap.String("path", rec.OutPath()),
		)
		defer finalize(rec, cfg.Record.Dir, logger)
	}

	return run(ctx, in, out, cfg.Agent.Controller(), rec, logger)
}

func finalize(rec *store.Recorder, dir string, logger *zap.Logger) {
	path, rows, err := rec.Finalize()
	if err != nil {
		logger.Error("finalize recording", zap.Error(err))
		return
	}
	if path == "" {
		return
	}

	idx, err := store.OpenSessionIndex(filepath.Join(dir, store.IndexFile))
	if err != nil {
		logger.Error("open session index", zap.Error(err))
		return
	}
	defer idx.Close()
	if err := idx.Add(rec.Session(), path); err != nil {
		logger.Error("index session", zap.Error(err))
		return
	}
	logger.Info("session recorded", zap.String("path", path), zap.Int("ticks", rows))
}
