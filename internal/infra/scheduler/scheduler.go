package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// everySchedule fires at a fixed interval measured from the previous
// activation. Unlike cron.Every it keeps sub-second precision.
type everySchedule struct {
	interval time.Duration
}

func (s everySchedule) Next(t time.Time) time.Time {
	return t.Add(s.interval)
}

// onceSchedule fires a single time at a fixed instant. Returning the zero
// time afterwards parks the entry; cron never runs it again.
type onceSchedule struct {
	at time.Time
}

func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// Rollover is the job run by the daily cron spec.
type Rollover interface {
	RolloverDay(ctx context.Context)
}

// AffirmationScheduler wraps a cron engine: it hosts the session's
// repeating and one-shot notification jobs and the daily counter rollover.
type AffirmationScheduler struct {
	cronEngine *cron.Cron
	logger     *logrus.Entry
	now        func() time.Time

	mu      sync.Mutex
	started bool
}

func NewAffirmationScheduler(logger *logrus.Entry) *AffirmationScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &AffirmationScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		logger: logger,
		now:    time.Now,
	}
}

// Every runs job repeatedly, first after one interval.
func (s *AffirmationScheduler) Every(interval time.Duration, job func()) func() {
	id := s.cronEngine.Schedule(everySchedule{interval: interval}, cron.FuncJob(job))
	s.logger.WithFields(logrus.Fields{"entry_id": id, "interval": interval.String()}).Debug("Repeating job scheduled")
	return s.remover(id)
}

// After runs job once after delay.
func (s *AffirmationScheduler) After(delay time.Duration, job func()) func() {
	id := s.cronEngine.Schedule(onceSchedule{at: s.now().Add(delay)}, cron.FuncJob(job))
	s.logger.WithFields(logrus.Fields{"entry_id": id, "delay": delay.String()}).Debug("One-shot job scheduled")
	return s.remover(id)
}

// ScheduleRollover registers the daily counter reset under a cron spec.
func (s *AffirmationScheduler) ScheduleRollover(spec string, target Rollover) error {
	_, err := s.cronEngine.AddFunc(spec, func() {
		s.logger.Info("Cron job triggered for daily counter rollover.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		target.RolloverDay(ctx)
	})
	return err
}

func (s *AffirmationScheduler) remover(id cron.EntryID) func() {
	var once sync.Once
	return func() {
		once.Do(func() { s.cronEngine.Remove(id) })
	}
}

func (s *AffirmationScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cronEngine.Start()
	s.logger.Info("Affirmation scheduler started.")
}

func (s *AffirmationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info("Stopping affirmation scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Affirmation scheduler gracefully stopped.")
}
