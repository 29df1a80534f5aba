package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/donRaoulo/bodyWare/internal/fitness/measurements"
	"github.com/donRaoulo/bodyWare/internal/fitness/sessions"
)

const dateLayout = "2006-01-02"

var measurementsHeader = []string{
	"Date", "Weight", "Chest", "Waist", "Hips", "UpperArm", "Forearm", "Thigh", "Calf",
}

var workoutsHeader = []string{
	"Date", "TemplateName", "ExerciseName", "ExerciseType", "Details",
}

// MeasurementRows renders body measurements into the fixed CSV column
// layout, header included. Absent metrics become empty cells.
func MeasurementRows(all []measurements.Measurement) [][]string {
	rows := make([][]string, 0, len(all)+1)
	rows = append(rows, measurementsHeader)
	for _, m := range all {
		rows = append(rows, []string{
			m.Date.Format(dateLayout),
			formatMetric(m.Weight),
			formatMetric(m.Chest),
			formatMetric(m.Waist),
			formatMetric(m.Hips),
			formatMetric(m.UpperArm),
			formatMetric(m.Forearm),
			formatMetric(m.Thigh),
			formatMetric(m.Calf),
		})
	}
	return rows
}

// WorkoutRows renders workout sessions one CSV row per exercise record,
// header included.
func WorkoutRows(all []sessions.Session) [][]string {
	rows := [][]string{workoutsHeader}
	for _, session := range all {
		if len(session.Records) == 0 {
			rows = append(rows, []string{
				session.Date.Format(dateLayout), session.TemplateName, "", "", "",
			})
			continue
		}
		for _, record := range session.Records {
			rows = append(rows, []string{
				session.Date.Format(dateLayout),
				session.TemplateName,
				record.ExerciseName,
				record.Type.String(),
				recordDetails(record),
			})
		}
	}
	return rows
}

// recordDetails produces the human-readable rendering of one record,
// e.g. "80kg x 5, 85kg x 3" for strength or "30min, Level 5, 5km" for cardio.
func recordDetails(record sessions.Record) string {
	switch {
	case record.Strength != nil:
		parts := make([]string, 0, len(record.Strength.Sets))
		for _, set := range record.Strength.Sets {
			parts = append(parts, fmt.Sprintf("%skg x %d", formatNumber(set.Weight), set.Reps))
		}
		return strings.Join(parts, ", ")
	case record.Cardio != nil:
		return fmt.Sprintf("%smin, Level %d, %skm",
			formatNumber(record.Cardio.Time), record.Cardio.Level, formatNumber(record.Cardio.Distance))
	case record.Endurance != nil:
		return fmt.Sprintf("%smin, %skm, %smin/km",
			formatNumber(record.Endurance.Time),
			formatNumber(record.Endurance.Distance),
			formatNumber(record.Endurance.Pace))
	case record.Stretch != nil:
		return "Completed"
	case record.Counter != nil:
		return formatNumber(record.Counter.Value)
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatMetric(f *float64) string {
	if f == nil {
		return ""
	}
	return formatNumber(*f)
}
