package auth

import (
	"encoding/json"
	"net/http"

	"github.com/treinalab/treinalab/internal/mockdb"
	"github.com/treinalab/treinalab/internal/session"
	"github.com/treinalab/treinalab/internal/telemetry/metrics"
	"github.com/treinalab/treinalab/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	metrics *metrics.Manager
}

func NewHandler(service *Service, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

type signInRequest struct {
	Email string `json:"email"`
}

type signInResponse struct {
	Data  *SignInData   `json:"data"`
	Error *mockdb.Error `json:"error"`
}

func (handler *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("sign in: decode request: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	data, signInErr := handler.service.SignIn(r.Context(), req.Email)
	if signInErr != nil {
		log.Tracef("sign in failed for [%s]: %s", req.Email, signInErr.Message)
		pkg.WriteJSONResponse(w, signInResponse{Error: signInErr})
		return
	}

	handler.metrics.CounterSignIns.Inc()
	pkg.WriteJSONResponse(w, signInResponse{Data: data})
}

type sessionResponse struct {
	Data struct {
		Session *session.Session `json:"session"`
	} `json:"data"`
	Error *mockdb.Error `json:"error"`
}

func (handler *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{}
	resp.Data.Session = handler.service.GetSession(r.Context())
	pkg.WriteJSONResponse(w, resp)
}

func (handler *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	handler.service.SignOut(r.Context())
	pkg.WriteJSONResponse(w, struct {
		Error *mockdb.Error `json:"error"`
	}{})
}
