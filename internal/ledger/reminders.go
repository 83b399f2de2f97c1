package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/models"
)

// AddReminder appends a reminder for the active profile. remindTime is
// optional and must be HH:mm when given.
func (s *Service) AddReminder(ctx context.Context, task string, date dateutils.Date, remindTime string) (models.Reminder, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return models.Reminder{}, errors.New("reminder task cannot be empty")
	}
	if date.IsZero() {
		return models.Reminder{}, errors.New("reminder date is required")
	}
	if remindTime != "" && !dateutils.IsClock(remindTime) {
		return models.Reminder{}, fmt.Errorf("%w: %q", ErrInvalidRemindTime, remindTime)
	}

	var r models.Reminder
	_, err := s.mutate(ctx, "add_reminder", func(st *models.AppState) error {
		p, err := activeProfile(st)
		if err != nil {
			return err
		}
		r = models.Reminder{
			ID:         s.ids.NewID(),
			ProfileID:  p.ID,
			Task:       task,
			Date:       date,
			RemindTime: remindTime,
		}
		st.Reminders = append(st.Reminders, r)
		return nil
	})
	if err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}

// ToggleReminder flips the completion flag of reminder id.
func (s *Service) ToggleReminder(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "toggle_reminder", func(st *models.AppState) error {
		for i := range st.Reminders {
			if st.Reminders[i].ID == id {
				st.Reminders[i].IsCompleted = !st.Reminders[i].IsCompleted
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrReminderNotFound, id)
	})
	return err
}

// DeleteReminder removes reminder id.
func (s *Service) DeleteReminder(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "delete_reminder", func(st *models.AppState) error {
		for i := range st.Reminders {
			if st.Reminders[i].ID == id {
				st.Reminders = append(st.Reminders[:i], st.Reminders[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrReminderNotFound, id)
	})
	return err
}
