package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/kimikokel/weather-wizard/internal/session"
)

// Scheduler periodically refreshes the active session so a displayed summary
// does not go stale. A refresh runs through Session.Search and obeys the same
// generation rules as a user-triggered query.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sess      *session.Session
	interval  time.Duration
}

// New creates a new Scheduler. An interval of zero or less disables
// refreshing.
func New(sess *session.Session, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		sess:      sess,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ticket, ok := s.sess.Refresh()
		if !ok {
			log.Println("scheduler: nothing searched yet; skipping refresh")
			return
		}
		log.Printf("scheduler: refresh started (generation %d, query %s)", ticket.Generation, ticket.QueryID)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
