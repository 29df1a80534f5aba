package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/internal/fitness/measurements"
	"github.com/donRaoulo/bodyWare/internal/fitness/sessions"
	"github.com/donRaoulo/bodyWare/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=export_test

type measurementsSource interface {
	List(ctx context.Context, ownerID string) ([]measurements.Measurement, error)
}

type workoutsSource interface {
	ListAll(ctx context.Context, ownerID string) ([]sessions.Session, error)
}

type Handler struct {
	measurements measurementsSource
	workouts     workoutsSource
}

func NewHandler(measurementsSrc measurementsSource, workoutsSrc workoutsSource) *Handler {
	return &Handler{
		measurements: measurementsSrc,
		workouts:     workoutsSrc,
	}
}

func (handler *Handler) HandleMeasurementsCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	all, err := handler.measurements.List(r.Context(), userID)
	if err != nil {
		log.Errorf("export measurements: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.writeCSV(w, "bodyware-measurements", MeasurementRows(all))
}

func (handler *Handler) HandleWorkoutsCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	all, err := handler.workouts.ListAll(r.Context(), userID)
	if err != nil {
		log.Errorf("export workouts: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.writeCSV(w, "bodyware-workouts", WorkoutRows(all))
}

func (handler *Handler) writeCSV(w http.ResponseWriter, filePrefix string, rows [][]string) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	if err := csvWriter.WriteAll(rows); err != nil {
		log.Errorf("write csv: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	fileName := fmt.Sprintf("%s-%s.csv", filePrefix, time.Now().Format(dateLayout))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	pkg.WriteResponseBytes(w, pkg.ContentType.CSV, buf.Bytes(), http.StatusOK)
}
