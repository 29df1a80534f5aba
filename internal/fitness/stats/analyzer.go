package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/donRaoulo/bodyWare/internal/fitness/exercises"
	"github.com/donRaoulo/bodyWare/internal/fitness/sessions"
	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

const topRecordsCount = 5

type workoutsSource interface {
	ListAll(ctx context.Context, ownerID string) ([]sessions.Session, error)
}

type exercisesCatalog interface {
	Get(ctx context.Context, ownerID, id string) (exercises.Exercise, error)
}

// Overview carries the dashboard headline figures.
type Overview struct {
	TotalWorkouts    int     `json:"totalWorkouts"`
	ThisWeekWorkouts int     `json:"thisWeekWorkouts"`
	TotalWeightKg    float64 `json:"totalWeightKg"`
}

type PersonalRecord struct {
	ExerciseID   string  `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName"`
	MaxWeight    float64 `json:"maxWeight"`
}

type CounterProgress struct {
	ExerciseID   string   `json:"exerciseId"`
	ExerciseName string   `json:"exerciseName"`
	Total        float64  `json:"total"`
	Goal         *float64 `json:"goal,omitempty"`
	GoalDueDate  *string  `json:"goalDueDate,omitempty"`
}

// Analyzer derives dashboard statistics from workout session records.
// Everything is recomputed per request, nothing is memoized.
type Analyzer struct {
	workouts workoutsSource
	catalog  exercisesCatalog
	// replaceable in tests
	NowFunc func() time.Time
}

func NewAnalyzer(workouts workoutsSource, catalog exercisesCatalog) *Analyzer {
	return &Analyzer{
		workouts: workouts,
		catalog:  catalog,
		NowFunc:  time.Now,
	}
}

func (a *Analyzer) Overview(ctx context.Context, ownerID string) (_ Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := a.workouts.ListAll(ctx, ownerID)
	if err != nil {
		return Overview{}, err
	}

	span.SetAttributes(attribute.Int("sessions", len(all)))

	weekStart, weekEnd := weekWindow(a.NowFunc())

	overview := Overview{
		TotalWorkouts: len(all),
	}
	for _, session := range all {
		if !session.Date.Before(weekStart) && session.Date.Before(weekEnd) {
			overview.ThisWeekWorkouts++
		}
		for _, record := range session.Records {
			if record.Strength == nil {
				continue
			}
			for _, set := range record.Strength.Sets {
				// volume lifted: a set with zero reps contributes nothing
				overview.TotalWeightKg += set.Weight * float64(set.Reps)
			}
		}
	}

	return overview, nil
}

// PersonalRecords returns the top exercises by the heaviest single set ever
// recorded, at most five. Ties are broken by exercise name, then id.
func (a *Analyzer) PersonalRecords(ctx context.Context, ownerID string) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.personalRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := a.workouts.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	maxWeights := make(map[string]PersonalRecord)
	for _, session := range all {
		for _, record := range session.Records {
			if record.Strength == nil {
				continue
			}
			for _, set := range record.Strength.Sets {
				pr, seen := maxWeights[record.ExerciseID]
				if !seen || set.Weight > pr.MaxWeight {
					maxWeights[record.ExerciseID] = PersonalRecord{
						ExerciseID:   record.ExerciseID,
						ExerciseName: record.ExerciseName,
						MaxWeight:    set.Weight,
					}
				}
			}
		}
	}

	records := make([]PersonalRecord, 0, len(maxWeights))
	for _, pr := range maxWeights {
		records = append(records, pr)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].MaxWeight != records[j].MaxWeight {
			return records[i].MaxWeight > records[j].MaxWeight
		}
		if records[i].ExerciseName != records[j].ExerciseName {
			return records[i].ExerciseName < records[j].ExerciseName
		}
		return records[i].ExerciseID < records[j].ExerciseID
	})

	if len(records) > topRecordsCount {
		records = records[:topRecordsCount]
	}

	return records, nil
}

// CounterProgress sums the counter record values per exercise across all of
// the owner's sessions and joins in the exercise's current goal.
func (a *Analyzer) CounterProgress(ctx context.Context, ownerID string) (_ []CounterProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.counterProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := a.workouts.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*CounterProgress)
	for _, session := range all {
		for _, record := range session.Records {
			if record.Counter == nil {
				continue
			}
			progress, seen := totals[record.ExerciseID]
			if !seen {
				progress = &CounterProgress{
					ExerciseID:   record.ExerciseID,
					ExerciseName: record.ExerciseName,
				}
				totals[record.ExerciseID] = progress
			}
			progress.Total += record.Counter.Value
		}
	}

	result := make([]CounterProgress, 0, len(totals))
	for exerciseID, progress := range totals {
		exercise, getErr := a.catalog.Get(ctx, ownerID, exerciseID)
		switch {
		case getErr == nil:
			progress.Goal = exercise.Goal
			progress.GoalDueDate = exercise.GoalDueDate
		case errors.Is(getErr, exercises.ErrExerciseNotFound):
			// catalog entry gone, the total still counts, just without a goal
		default:
			return nil, fmt.Errorf("get exercise %s: %w", exerciseID, getErr)
		}
		result = append(result, *progress)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ExerciseName < result[j].ExerciseName
	})

	return result, nil
}

// weekWindow returns the Monday-first week containing t: from Monday
// 00:00:00 inclusive to the following Monday 00:00:00 exclusive.
func weekWindow(t time.Time) (time.Time, time.Time) {
	dayOffset := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -dayOffset)
	return start, start.AddDate(0, 0, 7)
}
