package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (Exercise, error)
	List(ctx context.Context, ownerID string, params ListParams) ([]Exercise, error)
	UpdateGoal(ctx context.Context, ownerID, id string, goal float64, goalDueDate string) error
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{repo: repo}
}

type addExerciseRequest struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Goal        *float64 `json:"goal"`
	GoalDueDate *string  `json:"goalDueDate"`
}

type updateGoalRequest struct {
	Goal        *float64 `json:"goal"`
	GoalDueDate *string  `json:"goalDueDate"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	var req addExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}

	exercise, err := PrepareNew(Exercise{
		OwnerID:     userID,
		Name:        req.Name,
		Kind:        req.Kind,
		Goal:        req.Goal,
		GoalDueDate: req.GoalDueDate,
	})
	if err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(r.Context(), exercise)
	if err != nil {
		if errors.Is(err, ErrExerciseExists) {
			pkg.SendAPIErrResp(w, "exercise with that name already exists", http.StatusConflict)
			return
		}
		log.Errorf("add exercise: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, added, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	params := ListParams{
		Search: r.URL.Query().Get("search"),
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		params.Kind = Kind(kind)
		if !params.Kind.IsValid() {
			pkg.SendAPIErrResp(w, "invalid exercise kind", http.StatusBadRequest)
			return
		}
	}

	found, err := handler.repo.List(r.Context(), userID, params)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}
	if found == nil {
		found = []Exercise{}
	}

	pkg.SendAPIOKResp(w, found, http.StatusOK)
}

func (handler *Handler) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.SendAPIErrResp(w, "exercise id missing", http.StatusBadRequest)
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateGoal(req.Goal, req.GoalDueDate); err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := handler.repo.UpdateGoal(r.Context(), userID, id, *req.Goal, *req.GoalDueDate)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			pkg.SendAPIErrResp(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("update exercise goal: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, "updated", http.StatusOK)
}
