package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=settings_test

type settingsRepo interface {
	Get(ctx context.Context, ownerID string) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

type Handler struct {
	repo settingsRepo
}

func NewHandler(repo settingsRepo) *Handler {
	return &Handler{repo: repo}
}

// pointer fields, only provided values get applied
type updateSettingsRequest struct {
	DashboardSessionLimit *int  `json:"dashboardSessionLimit"`
	DarkMode              *bool `json:"darkMode"`
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	s, err := handler.repo.Get(r.Context(), userID)
	if err != nil {
		log.Errorf("get settings: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, s, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.SendAPIErrResp(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := handler.repo.Get(r.Context(), userID)
	if err != nil {
		log.Errorf("get settings before update: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	if req.DashboardSessionLimit != nil {
		s.DashboardSessionLimit = *req.DashboardSessionLimit
	}
	if req.DarkMode != nil {
		s.DarkMode = *req.DarkMode
	}
	if err := s.Validate(); err != nil {
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Save(r.Context(), s); err != nil {
		log.Errorf("save settings: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, s, http.StatusOK)
}
