package sessions

import (
	"fmt"

	"github.com/donRaoulo/bodyWare/internal/fitness/exercises"
	"github.com/donRaoulo/bodyWare/pkg"
)

// Record is one exercise performed within a workout session. It is a
// tagged union over the exercise kind: exactly the payload matching Type
// is set, the other four stay nil. The exercise name and type are
// snapshots taken when the record is written, later catalog changes do
// not rewrite history.
type Record struct {
	ID           string         `json:"id"`
	ExerciseID   string         `json:"exerciseId"`
	ExerciseName string         `json:"exerciseName"`
	Type         exercises.Kind `json:"type"`

	Strength  *StrengthData  `json:"strength,omitempty"`
	Cardio    *CardioData    `json:"cardio,omitempty"`
	Endurance *EnduranceData `json:"endurance,omitempty"`
	Stretch   *StretchData   `json:"stretch,omitempty"`
	Counter   *CounterData   `json:"counter,omitempty"`
}

type StrengthSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type StrengthData struct {
	Sets []StrengthSet `json:"sets"`
}

type CardioData struct {
	// minutes
	Time     float64 `json:"time"`
	Level    int     `json:"level"`
	Distance float64 `json:"distance"`
}

type EnduranceData struct {
	Time     float64 `json:"time"`
	Distance float64 `json:"distance"`
	// minutes per km, always recomputed from time and distance
	Pace float64 `json:"pace"`
}

type StretchData struct {
	Completed bool `json:"completed"`
}

type CounterData struct {
	Value float64 `json:"value"`
}

// RecordInput is the client-supplied shape of a record. Pointer fields
// distinguish "not entered" from an explicit zero, which matters for the
// normalization defaults below.
type RecordInput struct {
	ExerciseID string `json:"exerciseId"`

	Strength  *StrengthInput  `json:"strength,omitempty"`
	Cardio    *CardioInput    `json:"cardio,omitempty"`
	Endurance *EnduranceInput `json:"endurance,omitempty"`
	Stretch   *StretchInput   `json:"stretch,omitempty"`
	Counter   *CounterInput   `json:"counter,omitempty"`
}

type StrengthSetInput struct {
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
}

type StrengthInput struct {
	Sets []StrengthSetInput `json:"sets"`
}

type CardioInput struct {
	Time     *float64 `json:"time"`
	Level    *int     `json:"level"`
	Distance *float64 `json:"distance"`
}

type EnduranceInput struct {
	Time     *float64 `json:"time"`
	Distance *float64 `json:"distance"`
}

type StretchInput struct {
	Completed bool `json:"completed"`
}

type CounterInput struct {
	Value *float64 `json:"value"`
}

const defaultCardioLevel = 1

// Normalize turns a raw input record into its persisted form, following the
// per-kind rules below, or drops it when it carries no information:
//   - strength: sets where both weight and reps are missing are removed,
//     remaining missing values become 0; no surviving sets drops the record
//   - cardio: all three fields missing drops the record, otherwise
//     time and distance default to 0 and level to 1
//   - endurance: time and distance both missing drops the record, otherwise
//     missing values become 0 and pace is recomputed as round2(time/distance),
//     or 0 when distance is 0
//   - stretch: kept only when completed
//   - counter: kept only when a value was entered
//
// The bool result reports whether the record survived. Normalizing an
// already-normalized record yields the same record.
func Normalize(input RecordInput, exercise exercises.Exercise) (Record, bool, error) {
	record := Record{
		ExerciseID:   exercise.ID,
		ExerciseName: exercise.Name,
		Type:         exercise.Kind,
	}

	switch exercise.Kind {
	case exercises.KindStrength:
		if input.Strength == nil {
			return Record{}, false, nil
		}
		var sets []StrengthSet
		for _, set := range input.Strength.Sets {
			if set.Weight == nil && set.Reps == nil {
				continue
			}
			sets = append(sets, StrengthSet{
				Weight: floatOrZero(set.Weight),
				Reps:   intOrZero(set.Reps),
			})
		}
		if len(sets) == 0 {
			return Record{}, false, nil
		}
		record.Strength = &StrengthData{Sets: sets}
	case exercises.KindCardio:
		if input.Cardio == nil ||
			(input.Cardio.Time == nil && input.Cardio.Level == nil && input.Cardio.Distance == nil) {
			return Record{}, false, nil
		}
		level := defaultCardioLevel
		if input.Cardio.Level != nil {
			level = *input.Cardio.Level
		}
		record.Cardio = &CardioData{
			Time:     floatOrZero(input.Cardio.Time),
			Level:    level,
			Distance: floatOrZero(input.Cardio.Distance),
		}
	case exercises.KindEndurance:
		if input.Endurance == nil ||
			(input.Endurance.Time == nil && input.Endurance.Distance == nil) {
			return Record{}, false, nil
		}
		data := EnduranceData{
			Time:     floatOrZero(input.Endurance.Time),
			Distance: floatOrZero(input.Endurance.Distance),
		}
		if data.Distance > 0 {
			data.Pace = pkg.Round2(data.Time / data.Distance)
		}
		record.Endurance = &data
	case exercises.KindStretch:
		if input.Stretch == nil || !input.Stretch.Completed {
			return Record{}, false, nil
		}
		record.Stretch = &StretchData{Completed: true}
	case exercises.KindCounter:
		if input.Counter == nil || input.Counter.Value == nil {
			return Record{}, false, nil
		}
		record.Counter = &CounterData{Value: *input.Counter.Value}
	default:
		return Record{}, false, fmt.Errorf("unknown exercise kind: %s", exercise.Kind)
	}

	return record, true, nil
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func intOrZero(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
