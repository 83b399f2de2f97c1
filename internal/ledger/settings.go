package ledger

import (
	"context"

	"fjacquet/khoroch-khata/internal/models"
)

// SetTheme switches between the dark and light theme.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	if theme != models.ThemeDark && theme != models.ThemeLight {
		return ErrInvalidTheme
	}
	_, err := s.mutate(ctx, "set_theme", func(st *models.AppState) error {
		st.Theme = theme
		return nil
	})
	return err
}

// ToggleTheme flips the theme and returns the new one.
func (s *Service) ToggleTheme(ctx context.Context) (string, error) {
	state, err := s.mutate(ctx, "toggle_theme", func(st *models.AppState) error {
		if st.Theme == models.ThemeDark {
			st.Theme = models.ThemeLight
		} else {
			st.Theme = models.ThemeDark
		}
		return nil
	})
	return state.Theme, err
}

// SetAccentColor stores the display accent, an "r, g, b" triple.
func (s *Service) SetAccentColor(ctx context.Context, color string) error {
	_, err := s.mutate(ctx, "set_accent_color", func(st *models.AppState) error {
		st.AccentColor = color
		return nil
	})
	return err
}

// SetCurrency replaces the global currency formatting rule.
func (s *Service) SetCurrency(ctx context.Context, c models.CurrencyConfig) error {
	if c.Position != models.PositionPrefix && c.Position != models.PositionSuffix {
		return ErrInvalidCurrencyPlace
	}
	_, err := s.mutate(ctx, "set_currency", func(st *models.AppState) error {
		st.Currency = c
		return nil
	})
	return err
}

// SetNotificationSettings replaces the notification toggles.
func (s *Service) SetNotificationSettings(ctx context.Context, n models.NotificationSettings) error {
	_, err := s.mutate(ctx, "set_notifications", func(st *models.AppState) error {
		st.NotificationSettings = n
		return nil
	})
	return err
}
