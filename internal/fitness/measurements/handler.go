package measurements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/internal/telemetry/metrics"
	"github.com/donRaoulo/bodyWare/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=measurements_test

const dateLayout = "2006-01-02"

type measurementsRepo interface {
	Add(ctx context.Context, measurement Measurement) (Measurement, error)
	List(ctx context.Context, ownerID string) ([]Measurement, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type Handler struct {
	repo    measurementsRepo
	metrics *metrics.Manager
}

func NewHandler(repo measurementsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

type addMeasurementRequest struct {
	Date     string   `json:"date"`
	Weight   *float64 `json:"weight"`
	Chest    *float64 `json:"chest"`
	Waist    *float64 `json:"waist"`
	Hips     *float64 `json:"hips"`
	UpperArm *float64 `json:"upperArm"`
	Forearm  *float64 `json:"forearm"`
	Thigh    *float64 `json:"thigh"`
	Calf     *float64 `json:"calf"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	var req addMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			pkg.SendAPIErrResp(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	measurement := Measurement{
		OwnerID:  userID,
		Date:     date,
		Weight:   req.Weight,
		Chest:    req.Chest,
		Waist:    req.Waist,
		Hips:     req.Hips,
		UpperArm: req.UpperArm,
		Forearm:  req.Forearm,
		Thigh:    req.Thigh,
		Calf:     req.Calf,
	}
	if err := measurement.Validate(); err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(r.Context(), measurement)
	if err != nil {
		log.Errorf("add measurement: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterMeasurementsLogged.Inc()

	pkg.SendAPIOKResp(w, added, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	found, err := handler.repo.List(r.Context(), userID)
	if err != nil {
		log.Errorf("list measurements: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}
	if found == nil {
		found = []Measurement{}
	}

	pkg.SendAPIOKResp(w, found, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	err := handler.repo.Delete(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			pkg.SendAPIErrResp(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete measurement: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, "deleted", http.StatusOK)
}
