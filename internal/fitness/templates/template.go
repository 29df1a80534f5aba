package templates

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Status marks whether a template is still offered for starting new
// workouts. Archived templates stay resolvable because historical
// sessions reference them, the transition is one-way.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

type Template struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`
	// order-significant, duplicates allowed
	ExerciseIDs []string   `json:"exerciseIds"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
}

const minNameLength = 2

func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", fmt.Errorf("name must have at least %d characters", minNameLength)
	}
	return name, nil
}
