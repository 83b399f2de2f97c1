package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

type staticSource struct {
	mu    sync.Mutex
	state models.AppState
}

func (s *staticSource) Snapshot() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

type recorder struct {
	mu     sync.Mutex
	alerts []Alert
	err    error
}

func (r *recorder) Notify(_ context.Context, a Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

func state() models.AppState {
	s := models.DefaultState()
	s.Profiles = []models.Profile{{ID: "p1", Name: "A"}, {ID: "p2", Name: "B"}}
	s.ActiveProfileID = "p1"
	s.NotificationSettings.Sounds.Reminder = "data:audio/mp3;base64,AAAA"
	s.Reminders = []models.Reminder{
		{ID: "r1", ProfileID: "p1", Task: "বিদ্যুৎ বিল", Date: dateutils.MustParse("2024-05-15"), RemindTime: "09:30"},
		{ID: "r2", ProfileID: "p1", Task: "done already", Date: dateutils.MustParse("2024-05-15"), RemindTime: "09:30", IsCompleted: true},
		{ID: "r3", ProfileID: "p2", Task: "other profile", Date: dateutils.MustParse("2024-05-15"), RemindTime: "09:30"},
		{ID: "r4", ProfileID: "p1", Task: "no time", Date: dateutils.MustParse("2024-05-15")},
		{ID: "r5", ProfileID: "p1", Task: "tomorrow", Date: dateutils.MustParse("2024-05-16"), RemindTime: "09:30"},
	}
	return s
}

func at(h, m, sec int) time.Time {
	return time.Date(2024, 5, 15, h, m, sec, 0, time.UTC)
}

func TestDue(t *testing.T) {
	due := Due(state(), at(9, 30, 0))
	require.Len(t, due, 1)
	assert.Equal(t, "r1", due[0].ID)

	assert.Empty(t, Due(state(), at(9, 31, 0)))
	assert.Empty(t, Due(state(), at(9, 29, 59)))
}

func TestTick_FiresOncePerMinute(t *testing.T) {
	ctx := context.Background()
	src := &staticSource{state: state()}
	rec := &recorder{}
	s := NewSweeper(src, rec, logging.NewMockLogger())

	alerts := s.Tick(ctx, at(9, 30, 5))
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertTitle, alerts[0].Title)
	assert.Equal(t, "বিদ্যুৎ বিল", alerts[0].Reminder.Task)
	assert.Equal(t, "data:audio/mp3;base64,AAAA", alerts[0].Sound)

	assert.Empty(t, s.Tick(ctx, at(9, 30, 45)))
	assert.Empty(t, s.Tick(ctx, at(9, 31, 5)))
	assert.Equal(t, 1, rec.count())

	assert.False(t, src.Snapshot().Reminders[0].IsCompleted)
}

func TestTick_Disabled(t *testing.T) {
	st := state()
	st.NotificationSettings.EnableReminders = false
	rec := &recorder{}
	s := NewSweeper(&staticSource{state: st}, rec, nil)

	assert.Empty(t, s.Tick(context.Background(), at(9, 30, 0)))
	assert.Zero(t, rec.count())
}

func TestTick_RetriesAfterDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{err: errors.New("no display")}
	s := NewSweeper(&staticSource{state: state()}, rec, logging.NewMockLogger())

	assert.Empty(t, s.Tick(ctx, at(9, 30, 0)))
	rec.err = nil
	assert.Len(t, s.Tick(ctx, at(9, 30, 30)), 1)
}

func TestStartStop(t *testing.T) {
	src := &staticSource{state: state()}
	fired := make(chan Alert, 4)
	notifier := NotifierFunc(func(_ context.Context, a Alert) error {
		fired <- a
		return nil
	})
	s := NewSweeper(src, notifier, logging.NewMockLogger(),
		WithInterval(5*time.Millisecond),
		WithClock(func() time.Time { return at(9, 30, 0) }),
	)

	s.Start(context.Background())
	s.Start(context.Background())

	select {
	case a := <-fired:
		assert.Equal(t, "r1", a.Reminder.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder was not fired")
	}

	s.Stop()
	s.Stop()
	assert.Empty(t, fired, "same minute must not fire twice")
}

func TestStart_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSweeper(&staticSource{state: state()}, &recorder{}, nil, WithInterval(time.Millisecond))
	s.Start(ctx)
	cancel()
	s.Stop()
}

func TestUntilNextTick(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		interval time.Duration
		want     time.Duration
	}{
		{"mid minute", at(9, 30, 30), time.Minute, 31 * time.Second},
		{"just before the minute", at(9, 30, 59), time.Minute, 2 * time.Second},
		{"on the boundary", at(9, 30, 0), time.Minute, 61 * time.Second},
		{"after the offset", at(9, 30, 1).Add(500 * time.Millisecond), time.Minute, 59500 * time.Millisecond},
		{"short interval scales the offset", at(9, 30, 0).Add(2 * time.Millisecond), 5 * time.Millisecond, 3500 * time.Microsecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := untilNextTick(tt.now, tt.interval)
			assert.Equal(t, tt.want, got)
			landed := tt.now.Add(got)
			assert.Equal(t, time.Duration(0), landed.Sub(landed.Truncate(tt.interval))-min(tickOffset, tt.interval/10))
		})
	}
}

func TestStart_SweepsImmediately(t *testing.T) {
	fired := make(chan Alert, 1)
	s := NewSweeper(&staticSource{state: state()}, NotifierFunc(func(_ context.Context, a Alert) error {
		fired <- a
		return nil
	}), nil, WithClock(func() time.Time { return at(9, 30, 59) }))

	s.Start(context.Background())
	defer s.Stop()

	select {
	case a := <-fired:
		assert.Equal(t, "r1", a.Reminder.ID)
	case <-time.After(time.Second):
		t.Fatal("first sweep must not wait for the interval")
	}
}
