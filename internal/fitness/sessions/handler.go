package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/internal/fitness/exercises"
	"github.com/donRaoulo/bodyWare/internal/fitness/templates"
	"github.com/donRaoulo/bodyWare/internal/telemetry/metrics"
	"github.com/donRaoulo/bodyWare/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

const (
	dateLayout    = "2006-01-02"
	defaultLimit  = 10
	maxLimit      = 100
	defaultOffset = 0
)

type workoutsService interface {
	Create(ctx context.Context, ownerID, templateID string, date time.Time, inputs []RecordInput) (Session, error)
	Edit(ctx context.Context, ownerID, sessionID string, inputs []RecordInput) error
	Get(ctx context.Context, ownerID, id string) (Session, error)
	List(ctx context.Context, ownerID string, params ListParams) ([]Session, int, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type Handler struct {
	service workoutsService
	metrics *metrics.Manager
}

func NewHandler(service workoutsService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

type createSessionRequest struct {
	TemplateID string        `json:"templateId"`
	Date       string        `json:"date"`
	Exercises  []RecordInput `json:"exercises"`
}

type editSessionRequest struct {
	Exercises []RecordInput `json:"exercises"`
}

type listSessionsResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TemplateID == "" {
		pkg.SendAPIErrResp(w, "template id missing", http.StatusBadRequest)
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

	session, err := handler.service.Create(r.Context(), userID, req.TemplateID, date, req.Exercises)
	if err != nil {
		handler.writeServiceErr(w, err, "create session")
		return
	}

	handler.metrics.CounterWorkoutsLogged.Inc()

	pkg.SendAPIOKResp(w, session, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	params := ListParams{
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxLimit {
			pkg.SendAPIErrResp(w, "invalid limit", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			pkg.SendAPIErrResp(w, "invalid offset", http.StatusBadRequest)
			return
		}
		params.Offset = offset
	}

	found, total, err := handler.service.List(r.Context(), userID, params)
	if err != nil {
		log.Errorf("list sessions: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}
	if found == nil {
		found = []Session{}
	}

	pkg.SendAPIOKResp(w, listSessionsResponse{
		Sessions: found,
		Total:    total,
	}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	session, err := handler.service.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		handler.writeServiceErr(w, err, "get session")
		return
	}

	pkg.SendAPIOKResp(w, session, http.StatusOK)
}

func (handler *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	var req editSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := handler.service.Edit(r.Context(), userID, mux.Vars(r)["id"], req.Exercises); err != nil {
		handler.writeServiceErr(w, err, "edit session")
		return
	}

	pkg.SendAPIOKResp(w, "updated", http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	if err := handler.service.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		handler.writeServiceErr(w, err, "delete session")
		return
	}

	pkg.SendAPIOKResp(w, "deleted", http.StatusOK)
}

func (handler *Handler) writeServiceErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		pkg.SendAPIErrResp(w, "session not found", http.StatusNotFound)
	case errors.Is(err, templates.ErrTemplateNotFound):
		pkg.SendAPIErrResp(w, "template not found", http.StatusNotFound)
	case errors.Is(err, ErrNoExerciseData):
		pkg.SendAPIErrResp(w, ErrNoExerciseData.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrExerciseNotInTemplate):
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, exercises.ErrExerciseNotFound):
		pkg.SendAPIErrResp(w, "exercise not found", http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
	}
}
