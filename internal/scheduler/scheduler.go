// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sahablabs/sahab-go/internal/service"
	"github.com/sahablabs/sahab-go/internal/store"
)

// eventRetention is how long event log records are kept.
const eventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron runner and its jobs: flushing buffered blog view
// counts every minute and pruning old event log records daily.
type Scheduler struct {
	db     *sql.DB
	views  *service.ViewCounter
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler instance.
func New(db *sql.DB, views *service.ViewCounter, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		views:  views,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the jobs and begins the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.flushViews); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("30 3 * * *", s.pruneEvents); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs and flushes any remaining view counts.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.flushViews()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) flushViews() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.views.Flush(ctx); err != nil {
		s.logger.Error("failed to flush view counts", "error", err)
	}
}

func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-eventRetention)
	removed, err := store.New(s.db).PruneEvents(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to prune events", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("pruned old events", "removed", removed, "cutoff", cutoff)
	}
}
