package notification

import (
	"time"

	"github.com/robfig/cron/v3"

	"obnavi/backend/internal/logger"
)

// Scheduler runs the periodic queue flushes.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler wires the morning and weekly flushes onto cron specs
// evaluated in Asia/Tokyo.
func NewScheduler(d *Dispatcher, morningSpec, weeklySpec string) (*Scheduler, error) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(morningSpec, func() { d.Flush(QueueMorning) }); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(weeklySpec, func() { d.Flush(QueueWeekly) }); err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Info("email flush scheduler started")
}

// Stop halts scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
