package services

import (
	"log"
	"sync"
	"time"
)

// Scheduler owns the periodic reminder and late-fee passes. Each task ticks
// on its own interval and runs its pass in a fresh goroutine, so a slow pass
// never delays the next tick. Overlapping runs are safe: every transition
// guard re-checks persisted state.
type Scheduler struct {
	Cycle    *ReminderCycleService
	LateFees *LateFeeService

	ReminderInterval time.Duration
	LateFeeInterval  time.Duration

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// Start launches the background tasks. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})

	if s.ReminderInterval <= 0 {
		s.ReminderInterval = time.Hour
	}
	if s.LateFeeInterval <= 0 {
		s.LateFeeInterval = 24 * time.Hour
	}

	s.run("reminder cycle", s.ReminderInterval, func() { s.Cycle.Run() })
	s.run("late-fee pass", s.LateFeeInterval, func() { s.LateFees.Run() })

	log.Printf("Scheduler started (reminders every %s, late fees every %s)",
		s.ReminderInterval, s.LateFeeInterval)
}

func (s *Scheduler) run(name string, every time.Duration, pass func()) {
	stop := s.stop
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				log.Printf("Scheduler: running %s...", name)
				s.wg.Add(1)
				go func() {
					defer s.wg.Done()
					pass()
				}()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the tickers and waits for in-flight passes to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stop == nil {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	s.stop = nil
	s.mu.Unlock()

	s.wg.Wait()
	log.Println("Scheduler stopped")
}
