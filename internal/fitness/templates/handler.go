package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/internal/fitness/exercises"
	"github.com/donRaoulo/bodyWare/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=templates_test

type templatesRepo interface {
	Add(ctx context.Context, template Template) (Template, error)
	Get(ctx context.Context, ownerID, id string) (Template, error)
	List(ctx context.Context, ownerID string, params ListParams) ([]Template, error)
	Update(ctx context.Context, ownerID, id, name string, exerciseIDs []string) error
	Archive(ctx context.Context, ownerID, id string) error
}

type exercisesCatalog interface {
	Get(ctx context.Context, ownerID, id string) (exercises.Exercise, error)
}

type Handler struct {
	repo    templatesRepo
	catalog exercisesCatalog
}

func NewHandler(repo templatesRepo, catalog exercisesCatalog) *Handler {
	return &Handler{
		repo:    repo,
		catalog: catalog,
	}
}

type templateRequest struct {
	Name        string   `json:"name"`
	ExerciseIDs []string `json:"exerciseIds"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name, err := ValidateName(req.Name)
	if err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.checkExercises(r.Context(), userID, req.ExerciseIDs); err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(r.Context(), Template{
		OwnerID:     userID,
		Name:        name,
		ExerciseIDs: req.ExerciseIDs,
	})
	if err != nil {
		log.Errorf("add template: %s", err)
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
		IncludeArchived: r.URL.Query().Get("includeArchived") == "true",
	}

	found, err := handler.repo.List(r.Context(), userID, params)
	if err != nil {
		log.Errorf("list templates: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}
	if found == nil {
		found = []Template{}
	}

	pkg.SendAPIOKResp(w, found, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	template, err := handler.repo.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			pkg.SendAPIErrResp(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("get template: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, template, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name, err := ValidateName(req.Name)
	if err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.checkExercises(r.Context(), userID, req.ExerciseIDs); err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = handler.repo.Update(r.Context(), userID, mux.Vars(r)["id"], name, req.ExerciseIDs)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			pkg.SendAPIErrResp(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("update template: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, "updated", http.StatusOK)
}

func (handler *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	err := handler.repo.Archive(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			pkg.SendAPIErrResp(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("archive template: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, "archived", http.StatusOK)
}

func (handler *Handler) checkExercises(ctx context.Context, userID string, exerciseIDs []string) error {
	for _, exerciseID := range exerciseIDs {
		if _, err := handler.catalog.Get(ctx, userID, exerciseID); err != nil {
			if errors.Is(err, exercises.ErrExerciseNotFound) {
				return fmt.Errorf("unknown exercise: %s", exerciseID)
			}
			return err
		}
	}
	return nil
}
