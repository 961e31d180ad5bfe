package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/brensch/hypersonic/agent"
	"github.com/brensch/hypersonic/feed"
	"github.com/brensch/hypersonic/game"
	"github.com/brensch/hypersonic/store"
)

// run drives one session: read a tick, fold it into the board, decide and
// answer, until the feed ends or ctx is cancelled. rec may be nil.
func run(ctx context.Context, in io.Reader, out io.Writer, cfg agent.Config, rec *store.Recorder, logger *zap.Logger) error {
	r := feed.NewReader(in)
	w := feed.NewWriter(out)

	h, err := r.Header()
	if err != nil {
		return err
	}
	logger.Info("session started",
		zap.Int("width", h.Width),
		zap.Int("height", h.Height),
		zap.Int("my_id", h.MyID),
	)

	board := game.NewBoard(h.Width, h.Height)
	ctrl := agent.New(cfg, logger)

	for tick := 1; ; tick++ {
		if err := ctx.Err(); err != nil {
			logger.Info("stopping", zap.Int("ticks", tick-1))
			return nil
		}

		t, err := r.Next()
		if errors.Is(err, io.EOF) {
			logger.Info("feed closed", zap.Int("ticks", tick-1))
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("tick %d: %w", tick, err)
		}

		if err := feed.Apply(board, t, h.MyID); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}

		start := time.Now()
		action := ctrl.Tick(board)
		elapsed := time.Since(start)

		if err := w.Write(action); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}

		if rec != nil {
			row := store.NewTickRow(rec.Session(), tick, board, action, ctrl.State(), elapsed)
			if err := rec.Record(row); err != nil {
				logger.Error("recording disabled", zap.Error(err))
				rec = nil
			}
		}
	}
}
