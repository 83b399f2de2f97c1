package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory if one exists. It reports the file it loaded, or "".
// Variables already set in the process environment win over the file.
func LoadEnv() string {
	var loaded string
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err == nil {
				loaded = candidate
			}
			return
		}
	})
	return loaded
}

// Weekend converts Locale.WeekendDays into weekdays.
func (c *Config) Weekend() []time.Weekday {
	days := make([]time.Weekday, 0, len(c.Locale.WeekendDays))
	for _, day := range c.Locale.WeekendDays {
		days = append(days, time.Weekday(day))
	}
	return days
}
