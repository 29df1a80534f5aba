package exercises

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind determines the shape of the data recorded for an exercise
// within a workout session.
type Kind string

const (
	KindStrength  Kind = "strength"
	KindCardio    Kind = "cardio"
	KindEndurance Kind = "endurance"
	KindStretch   Kind = "stretch"
	KindCounter   Kind = "counter"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindStrength, KindCardio, KindEndurance, KindStretch, KindCounter:
		return true
	default:
		return false
	}
}

type Exercise struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId,omitempty"` // empty for shared defaults
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	// goal fields are set for counter exercises only
	Goal        *float64  `json:"goal,omitempty"`
	GoalDueDate *string   `json:"goalDueDate,omitempty"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

const minNameLength = 2

// PrepareNew validates and normalizes a new catalog entry:
// name is trimmed and must keep at least two characters, the kind must be
// one of the known five, and the goal pair is required for counter
// exercises and forced to null for every other kind.
func PrepareNew(e Exercise) (Exercise, error) {
	e.Name = strings.TrimSpace(e.Name)
	if utf8.RuneCountInString(e.Name) < minNameLength {
		return e, fmt.Errorf("name must have at least %d characters", minNameLength)
	}

	if !e.Kind.IsValid() {
		return e, fmt.Errorf("invalid exercise kind: %s", e.Kind)
	}

	if e.Kind == KindCounter {
		if err := validateGoal(e.Goal, e.GoalDueDate); err != nil {
			return e, err
		}
	} else {
		e.Goal = nil
		e.GoalDueDate = nil
	}

	return e, nil
}

func validateGoal(goal *float64, goalDueDate *string) error {
	if goal == nil || goalDueDate == nil {
		return errors.New("counter exercises require a goal and a goal due date")
	}
	if math.IsNaN(*goal) || math.IsInf(*goal, 0) || *goal <= 0 {
		return errors.New("goal must be a positive number")
	}
	if strings.TrimSpace(*goalDueDate) == "" {
		return errors.New("goal due date must not be empty")
	}
	return nil
}
