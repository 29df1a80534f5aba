package measurements

import (
	"errors"
	"math"
	"time"
)

var (
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrNoMetrics           = errors.New("at least one measurement value is required")
)

// Measurement is one dated body measurement entry. Every metric is
// optional, an entry just has to carry at least one of them. Values are
// in kg for weight and cm for the rest.
type Measurement struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`

	Weight   *float64 `json:"weight,omitempty"`
	Chest    *float64 `json:"chest,omitempty"`
	Waist    *float64 `json:"waist,omitempty"`
	Hips     *float64 `json:"hips,omitempty"`
	UpperArm *float64 `json:"upperArm,omitempty"`
	Forearm  *float64 `json:"forearm,omitempty"`
	Thigh    *float64 `json:"thigh,omitempty"`
	Calf     *float64 `json:"calf,omitempty"`
}

func (m *Measurement) metrics() []**float64 {
	return []**float64{&m.Weight, &m.Chest, &m.Waist, &m.Hips, &m.UpperArm, &m.Forearm, &m.Thigh, &m.Calf}
}

// Validate checks that at least one metric is present and that every
// present value is a positive, finite number. NaN values count as
// absent and are cleared.
func (m *Measurement) Validate() error {
	var present int
	for _, metric := range m.metrics() {
		if *metric == nil {
			continue
		}
		if math.IsNaN(**metric) {
			*metric = nil
			continue
		}
		if math.IsInf(**metric, 0) || **metric <= 0 {
			return errors.New("measurement values must be positive numbers")
		}
		present++
	}
	if present == 0 {
		return ErrNoMetrics
	}
	return nil
}
