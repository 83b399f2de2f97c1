package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Name   string
	Avatar string
	Color  string
	Image  string
}

// OnboardingInput is what the signup flow collects.
type OnboardingInput struct {
	ProfileInput
	Email          string
	Credential     string
	CurrencySymbol string
}

// AddProfile creates a profile and makes it active.
func (s *Service) AddProfile(ctx context.Context, in ProfileInput) (models.Profile, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Profile{}, ErrInvalidProfileName
	}
	p := models.Profile{
		ID:      s.ids.NewID(),
		Name:    strings.TrimSpace(in.Name),
		Avatar:  in.Avatar,
		Color:   in.Color,
		Image:   in.Image,
		Budgets: map[string]decimal.Decimal{},
	}
	_, err := s.mutate(ctx, "add_profile", func(st *models.AppState) error {
		st.Profiles = append(st.Profiles, p)
		st.ActiveProfileID = p.ID
		return nil
	})
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// CompleteOnboarding finishes signup. If a profile already uses the email
// it becomes active instead of creating a duplicate.
func (s *Service) CompleteOnboarding(ctx context.Context, in OnboardingInput) (models.Profile, error) {
	var result models.Profile
	_, err := s.mutate(ctx, "complete_onboarding", func(st *models.AppState) error {
		if existing, ok := st.ProfileByEmail(in.Email); ok {
			st.ActiveProfileID = existing.ID
			result = existing
			return nil
		}
		color := in.Color
		if color == "" {
			color = models.DefaultAccentColor
		}
		result = models.Profile{
			ID:       s.ids.NewID(),
			Name:     strings.TrimSpace(in.Name),
			Avatar:   in.Avatar,
			Image:    in.Image,
			Email:    strings.TrimSpace(in.Email),
			Password: in.Credential,
			Color:    color,
			Budgets:  map[string]decimal.Decimal{},
		}
		st.Profiles = append(st.Profiles, result)
		st.ActiveProfileID = result.ID
		if in.CurrencySymbol != "" {
			st.Currency.Symbol = in.CurrencySymbol
		}
		return nil
	})
	if err != nil {
		return models.Profile{}, err
	}
	return result, nil
}

// UpdateProfile replaces the display fields of a profile.
func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) error {
	_, err := s.mutate(ctx, "update_profile", func(st *models.AppState) error {
		i := st.ProfileIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		p := &st.Profiles[i]
		if name := strings.TrimSpace(in.Name); name != "" {
			p.Name = name
		}
		p.Avatar = in.Avatar
		p.Color = in.Color
		p.Image = in.Image
		return nil
	})
	return err
}

// SetProfileEmail sets or clears the login email of a profile. Emails are
// unique among profiles.
func (s *Service) SetProfileEmail(ctx context.Context, id, email string) error {
	email = strings.TrimSpace(email)
	_, err := s.mutate(ctx, "set_profile_email", func(st *models.AppState) error {
		i := st.ProfileIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		if other, ok := st.ProfileByEmail(email); ok && other.ID != id {
			return ErrEmailTaken
		}
		st.Profiles[i].Email = email
		return nil
	})
	return err
}

// DeleteProfile removes a profile together with its transactions and
// reminders. The first remaining profile, if any, becomes active.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	var removedTx, removedRem int
	_, err := s.mutate(ctx, "delete_profile", func(st *models.AppState) error {
		i := st.ProfileIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		st.Profiles = append(st.Profiles[:i], st.Profiles[i+1:]...)

		kept := st.Transactions[:0]
		for _, t := range st.Transactions {
			if t.ProfileID != id {
				kept = append(kept, t)
			}
		}
		removedTx = len(st.Transactions) - len(kept)
		st.Transactions = kept

		keptRem := st.Reminders[:0]
		for _, r := range st.Reminders {
			if r.ProfileID != id {
				keptRem = append(keptRem, r)
			}
		}
		removedRem = len(st.Reminders) - len(keptRem)
		st.Reminders = keptRem

		if len(st.Profiles) > 0 {
			st.ActiveProfileID = st.Profiles[0].ID
		} else {
			st.ActiveProfileID = ""
		}
		return nil
	})
	if err == nil {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldProfileID, Value: id},
			logging.Field{Key: "transactions_removed", Value: removedTx},
			logging.Field{Key: "reminders_removed", Value: removedRem},
		).Info("Profile deleted")
	}
	return err
}

// SwitchProfile makes id the active profile.
func (s *Service) SwitchProfile(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "switch_profile", func(st *models.AppState) error {
		if st.ProfileIndex(id) < 0 {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		st.ActiveProfileID = id
		return nil
	})
	return err
}

// SetBudget sets the monthly limit of a category for the active profile.
// Limits of zero or less are kept but never reported as progress.
func (s *Service) SetBudget(ctx context.Context, category string, limit decimal.Decimal) error {
	_, err := s.mutate(ctx, "set_budget", func(st *models.AppState) error {
		p, err := activeProfile(st)
		if err != nil {
			return err
		}
		if p.Budgets == nil {
			p.Budgets = map[string]decimal.Decimal{}
		}
		p.Budgets[category] = limit
		return nil
	})
	return err
}

// SetCredential overwrites the stored credential of the profile owning email.
func (s *Service) SetCredential(ctx context.Context, email, credential string) error {
	_, err := s.mutate(ctx, "set_credential", func(st *models.AppState) error {
		p, ok := st.ProfileByEmail(email)
		if !ok {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, email)
		}
		st.Profiles[st.ProfileIndex(p.ID)].Password = credential
		return nil
	})
	return err
}
