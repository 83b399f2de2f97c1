// Package reminder fires alerts for reminders that fall due.
package reminder

import (
	"context"
	"sync"
	"time"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// AlertTitle is the heading of every reminder alert.
const AlertTitle = "রিমাইন্ডার এলার্ট"

// DefaultInterval is the poll period.
const DefaultInterval = time.Minute

// tickOffset places each tick after the interval boundary.
const tickOffset = time.Second

// Alert is one due reminder handed to a Notifier.
type Alert struct {
	Title    string
	Reminder models.Reminder
	// Sound is the user's custom reminder sound, empty for the default beep.
	Sound string
	At    time.Time
}

// Notifier delivers alerts.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, alert Alert) error

func (f NotifierFunc) Notify(ctx context.Context, alert Alert) error { return f(ctx, alert) }

// Source provides the current document.
type Source interface {
	Snapshot() models.AppState
}

// Sweeper checks the active profile's reminders on every tick. A reminder
// is due when it is not completed and its date and HH:mm equal the current
// minute. Each reminder fires at most once per minute and is never
// modified.
type Sweeper struct {
	source   Source
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   logging.Logger

	mu     sync.Mutex
	fired  map[string]string
	stopCh chan struct{}
	done   chan struct{}
}

// Option customizes a Sweeper.
type Option func(*Sweeper)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) { s.now = now }
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewSweeper creates a stopped Sweeper.
func NewSweeper(source Source, notifier Notifier, logger logging.Logger, opts ...Option) *Sweeper {
	s := &Sweeper{
		source:   source,
		notifier: notifier,
		interval: DefaultInterval,
		now:      time.Now,
		logger:   logging.OrDefault(logger),
		fired:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Due returns the reminders of the active profile that match the minute of
// now. It does not check whether reminders are enabled.
func Due(state models.AppState, now time.Time) []models.Reminder {
	today := dateutils.FromTime(now)
	clock := dateutils.Clock(now)
	var due []models.Reminder
	for _, r := range state.Reminders {
		if r.ProfileID != state.ActiveProfileID || r.IsCompleted {
			continue
		}
		if r.Date == today && r.RemindTime == clock {
			due = append(due, r)
		}
	}
	return due
}

// Tick runs one sweep at now and returns the alerts it delivered.
func (s *Sweeper) Tick(ctx context.Context, now time.Time) []Alert {
	state := s.source.Snapshot()
	if !state.NotificationSettings.EnableReminders {
		return nil
	}
	minute := now.Format("2006-01-02T15:04")

	s.mu.Lock()
	defer s.mu.Unlock()

	var sent []Alert
	for _, r := range Due(state, now) {
		if s.fired[r.ID] == minute {
			continue
		}
		alert := Alert{
			Title:    AlertTitle,
			Reminder: r,
			Sound:    state.NotificationSettings.Sounds.Reminder,
			At:       now,
		}
		if err := s.notifier.Notify(ctx, alert); err != nil {
			s.logger.WithError(err).WithField(logging.FieldReminderID, r.ID).Warn("Failed to deliver reminder")
			continue
		}
		s.fired[r.ID] = minute
		sent = append(sent, alert)
	}
	for id, m := range s.fired {
		if m != minute {
			delete(s.fired, id)
		}
	}
	if len(sent) > 0 {
		s.logger.WithField(logging.FieldCount, len(sent)).Info("Reminders fired")
	}
	return sent
}

// Start polls in a goroutine until ctx ends or Stop is called. The first
// sweep runs at once, later ones just after each interval boundary.
// Calling Start on a running Sweeper does nothing.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.stopCh != nil {
		s.mu.Unlock()
		return
	}
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	stopCh, done := s.stopCh, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		wait := func(c <-chan time.Time) bool {
			select {
			case <-ctx.Done():
				return false
			case <-stopCh:
				return false
			case <-c:
				return true
			}
		}

		s.Tick(ctx, s.now())
		timer := time.NewTimer(untilNextTick(s.now(), s.interval))
		defer timer.Stop()
		if !wait(timer.C) {
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			s.Tick(ctx, s.now())
			if !wait(ticker.C) {
				return
			}
		}
	}()
}

// untilNextTick returns how long to wait so ticks land just after an
// interval boundary. With the default interval every tick falls early in
// its minute and timer jitter cannot carry it past the next minute.
func untilNextTick(now time.Time, interval time.Duration) time.Duration {
	offset := tickOffset
	if interval < 10*offset {
		offset = interval / 10
	}
	next := now.Truncate(interval).Add(interval + offset)
	return next.Sub(now)
}

// Stop ends polling and waits for the goroutine to exit.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	stopCh, done := s.stopCh, s.done
	s.stopCh, s.done = nil, nil
	s.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-done
}
