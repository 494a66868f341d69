package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs a background task on a cron schedule
type Scheduler struct {
	schedule cron.Schedule
	task     func(context.Context)
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cron     *cron.Cron
	cancel   context.CancelFunc
}

// New creates a Scheduler from a standard cron spec or a descriptor such as "@every 5m"
func New(spec string, task func(context.Context)) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return NewWithSchedule(schedule, task), nil
}

// NewWithSchedule creates a Scheduler for an already parsed schedule
func NewWithSchedule(schedule cron.Schedule, task func(context.Context)) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		task:     task,
	}
}

// Start begins executing the task on the schedule. Runs never overlap: a tick
// that arrives while the task is still running is skipped.
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	logger := cronLogger{}
	s.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	job := s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		if ctx.Err() == nil {
			s.task(ctx)
		}
	}))
	s.running = true

	if firstRunImmediately {
		// Through the cron entry so the first run shares the overlap guard
		entry := s.cron.Entry(job)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			entry.WrappedJob.Run()
		}()
	}
	s.cron.Start()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
}

// Stop terminates the schedule and waits for a running task to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the schedule is active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// cronLogger sends cron's own logging to zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("Scheduler: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("Scheduler: " + msg)
}
