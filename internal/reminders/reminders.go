// Package reminders announces tasks whose scheduled time is coming due.
package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"vtask/internal/config"
	"vtask/internal/dateparse"
	"vtask/internal/service"
)

// sweepTimeout bounds each reminder sweep.
const sweepTimeout = 30 * time.Second

// Announcer periodically sweeps the task list and speaks a reminder for
// each open task due within the configured window. Each task is announced
// at most once per scheduled time.
type Announcer struct {
	svc    service.Service
	speak  func(string)
	window time.Duration
	cron   *cron.Cron

	mu        sync.Mutex
	announced map[string]time.Time // task ID -> scheduled time already announced
}

// New creates an announcer on the configured cron spec. speak receives the
// rendered reminder sentences.
func New(cfg *config.Config, svc service.Service, speak func(string)) (*Announcer, error) {
	a := &Announcer{
		svc:       svc,
		speak:     speak,
		window:    cfg.ReminderWindow,
		cron:      cron.New(),
		announced: make(map[string]time.Time),
	}
	if _, err := a.cron.AddFunc(cfg.ReminderSpec, a.sweep); err != nil {
		return nil, fmt.Errorf("invalid reminder spec %q: %w", cfg.ReminderSpec, err)
	}
	return a, nil
}

// Start begins the sweep schedule.
func (a *Announcer) Start() {
	log.Info().Dur("window", a.window).Msg("reminder announcer started")
	a.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (a *Announcer) Stop() {
	<-a.cron.Stop().Done()
}

func (a *Announcer) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	tasks, err := a.svc.ListTasks(ctx, service.Query{})
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep failed")
		return
	}

	now := time.Now().UTC()
	for _, t := range tasks {
		if t.Completed || t.ScheduledTime == nil {
			continue
		}
		due := t.ScheduledTime.UTC()
		if due.Before(now) || due.After(now.Add(a.window)) {
			continue
		}
		if !a.markAnnounced(t.ID, due) {
			continue
		}
		a.speak(fmt.Sprintf("Reminder: %s is due %s.", t.Title, dateparse.FormatForSpeech(due, now)))
	}
}

// markAnnounced records the announcement; false means this task and
// scheduled time were already spoken.
func (a *Announcer) markAnnounced(id string, due time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if prev, ok := a.announced[id]; ok && prev.Equal(due) {
		return false
	}
	a.announced[id] = due
	return true
}
