package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const everyPrefix = "@every "

// intervalScheduler runs registered jobs on fixed "@every <duration>"
// intervals until its context is cancelled.
type intervalScheduler struct {
	ctx    context.Context
	logger interfaces.Logger
	wg     sync.WaitGroup
}

func newIntervalScheduler(ctx context.Context, logger interfaces.Logger) *intervalScheduler {
	return &intervalScheduler{ctx: ctx, logger: logger}
}

// Register satisfies the go-command cron registrar signature.
func (s *intervalScheduler) Register(cfg command.HandlerConfig, handler any) error {
	job, ok := handler.(func() error)
	if !ok {
		return fmt.Errorf("schedule: unsupported handler %T", handler)
	}
	raw, ok := strings.CutPrefix(strings.TrimSpace(cfg.Expression), everyPrefix)
	if !ok {
		return fmt.Errorf("schedule: expression %q must start with %q", cfg.Expression, everyPrefix)
	}
	interval, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || interval <= 0 {
		return fmt.Errorf("schedule: invalid interval %q", raw)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if err := job(); err != nil && s.logger != nil {
					s.logger.Error("schedule.job.failed", "expression", cfg.Expression, "error", err)
				}
			}
		}
	}()
	return nil
}

// Wait blocks until every job goroutine has returned.
func (s *intervalScheduler) Wait() {
	s.wg.Wait()
}
