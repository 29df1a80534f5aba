package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/donRaoulo/bodyWare/internal/auth"
	"github.com/donRaoulo/bodyWare/internal/middleware"
	"github.com/donRaoulo/bodyWare/internal/telemetry/metrics"
	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"
	"github.com/donRaoulo/bodyWare/pkg"
)

type Handler struct {
	authService    *auth.Service
	metricsManager *metrics.Manager
}

func NewHandler(authService *auth.Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		authService:    authService,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	authSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	authSubrouter.HandleFunc("/signup", handler.handleSignup).Methods("POST", "OPTIONS").Name("signup")
	authSubrouter.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	authSubrouter.HandleFunc("/logout", handler.handleLogout).Methods("GET", "OPTIONS").Name("logout")

	// rate limit the auth endpoints to prevent abuse
	authSubrouter.Use(middleware.RateLimit(rateLimiter, "auth", allowedPerMin, handler.metricsManager))
}

func (handler *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.signup")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var signupParams auth.SignupParams
	if err := json.NewDecoder(r.Body).Decode(&signupParams); err != nil {
		log.Tracef("signup, unmarshal json params: %s", err)
		pkg.SendAPIErrResp(w, "invalid signup request", http.StatusBadRequest)
		return
	}

	user, err := handler.authService.Signup(ctx, signupParams)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			pkg.SendAPIErrResp(w, "email already in use", http.StatusConflict)
			return
		}
		if reqIP, ipErr := pkg.ReadUserIP(r); ipErr == nil {
			log.Tracef("failed signup attempt from %s: %s", reqIP, err)
		}
		pkg.SendAPIErrResp(w, err.Error(), http.StatusBadRequest)
		return
	}

	handler.metricsManager.CounterSignups.Inc()

	log.Debugf("new user signed up: %s", user.ID)
	pkg.SendAPIOKResp(w, user, http.StatusCreated)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var credentials auth.Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			pkg.SendAPIErrResp(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			pkg.SendAPIErrResp(w, "parse form error", http.StatusInternalServerError)
			return
		}
		credentials = auth.Credentials{
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if credentials.Email == "" || credentials.Password == "" {
		pkg.SendAPIErrResp(w, "error, email or password empty", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.Login(ctx, credentials, time.Now())
	if err != nil {
		if errors.Is(err, auth.ErrWrongCredentials) {
			log.Tracef("failed login attempt for: %s", credentials.Email)
			pkg.SendAPIErrResp(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed: %s", err)
		pkg.SendAPIErrResp(w, "login failed", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"success":true,"data":{"token":"%s"}}`, token))
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(middleware.AuthTokenHeader)
	if authToken == "" {
		pkg.SendAPIErrResp(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, authToken)
	if err != nil || !loggedOut {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		pkg.SendAPIErrResp(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Printf("logout for [%s] success", authToken)
	pkg.SendAPIOKResp(w, "logged-out", http.StatusOK)
}
