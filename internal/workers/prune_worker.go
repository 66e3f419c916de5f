// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/service"
)

// PruneWorker periodically trims the server's change log down to the
// retention window. Every run advances the feed horizon, so clients holding
// tokens older than the window are forced into a full resync on their next
// fetch.
type PruneWorker struct {
	changes  service.ChangeService
	interval time.Duration
	logger   *logger.Logger

	stop chan struct{}
}

// NewPruneWorker builds a worker ticking every interval. A non-positive
// interval disables the worker entirely.
func NewPruneWorker(changes service.ChangeService, interval time.Duration, logger *logger.Logger) *PruneWorker {
	return &PruneWorker{
		changes:  changes,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Run implements [Worker]. It spawns the prune loop and returns immediately.
func (w *PruneWorker) Run() {
	if w.interval <= 0 {
		w.logger.Info().Str("func", "*PruneWorker.Run").Msg("change log pruning is disabled")
		return
	}

	w.logger.Info().
		Str("func", "*PruneWorker.Run").
		Dur("interval", w.interval).
		Msg("starting change log prune worker")

	go w.loop()
}

// Stop terminates the prune loop. Safe to call once.
func (w *PruneWorker) Stop() {
	close(w.stop)
}

func (w *PruneWorker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			w.logger.Info().Str("func", "*PruneWorker.loop").Msg("prune worker stopped")
			return
		case <-ticker.C:
			w.prune()
		}
	}
}

func (w *PruneWorker) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	pruned, err := w.changes.Prune(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "*PruneWorker.prune").Msg("change log pruning failed")
		return
	}

	w.logger.Info().
		Str("func", "*PruneWorker.prune").
		Int64("pruned", pruned).
		Msg("change log pruned")
}
