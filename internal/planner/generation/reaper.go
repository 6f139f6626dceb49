package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

const DefaultReaperSchedule = "@every 1m"

type reapFunc func(ctx context.Context) error

// Reaper periodically runs the stale job cleanup.
type Reaper struct {
	cron    *cron.Cron
	reap    reapFunc
	timeout time.Duration
}

func NewReaper(reap reapFunc, schedule string, timeout time.Duration) (*Reaper, error) {
	if schedule == "" {
		schedule = DefaultReaperSchedule
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := &Reaper{
		cron:    cron.New(),
		reap:    reap,
		timeout: timeout,
	}
	if err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("schedule reaper [%s]: %w", schedule, err)
	}
	return r, nil
}

func (r *Reaper) Start() {
	r.cron.Start()
	log.Debug("generation reaper started")
}

func (r *Reaper) Stop() {
	r.cron.Stop()
	log.Debug("generation reaper stopped")
}

func (r *Reaper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.reap(ctx); err != nil {
		log.Errorf("reaper: %s", err)
	}
}
