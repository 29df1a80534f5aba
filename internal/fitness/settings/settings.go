package settings

import (
	"fmt"
	"time"
)

const (
	DefaultDashboardSessionLimit = 5
	minDashboardSessionLimit     = 1
	maxDashboardSessionLimit     = 20
)

type Settings struct {
	OwnerID               string    `json:"-"`
	DashboardSessionLimit int       `json:"dashboardSessionLimit"`
	DarkMode              bool      `json:"darkMode"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func Defaults(ownerID string) Settings {
	return Settings{
		OwnerID:               ownerID,
		DashboardSessionLimit: DefaultDashboardSessionLimit,
		DarkMode:              false,
	}
}

func (s Settings) Validate() error {
	if s.DashboardSessionLimit < minDashboardSessionLimit || s.DashboardSessionLimit > maxDashboardSessionLimit {
		return fmt.Errorf("dashboard session limit must be between %d and %d",
			minDashboardSessionLimit, maxDashboardSessionLimit)
	}
	return nil
}
