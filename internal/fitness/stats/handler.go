package stats

import (
	"net/http"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	overview, err := handler.analyzer.Overview(r.Context(), userID)
	if err != nil {
		log.Errorf("stats overview: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.SendAPIOKResp(w, overview, http.StatusOK)
}

func (handler *Handler) HandlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	records, err := handler.analyzer.PersonalRecords(r.Context(), userID)
	if err != nil {
		log.Errorf("stats personal records: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []PersonalRecord{}
	}

	pkg.SendAPIOKResp(w, records, http.StatusOK)
}

func (handler *Handler) HandleCounterProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.SendAPIErrResp(w, "not logged in", http.StatusUnauthorized)
		return
	}

	progress, err := handler.analyzer.CounterProgress(r.Context(), userID)
	if err != nil {
		log.Errorf("stats counter progress: %s", err)
		pkg.SendAPIErrResp(w, "internal error", http.StatusInternalServerError)
		return
	}
	if progress == nil {
		progress = []CounterProgress{}
	}

	pkg.SendAPIOKResp(w, progress, http.StatusOK)
}
