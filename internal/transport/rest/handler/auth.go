package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"formsmith/internal/formgen"
	"formsmith/internal/model"
	"formsmith/internal/service"
	"formsmith/internal/translate"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type errorResponse struct {
	Error   string              `json:"error"`
	Details string              `json:"details,omitempty"`
	Errors  []model.AnswerError `json:"errors,omitempty"`
}

// writeServiceError maps domain errors onto {error, details} and a status
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		verr *service.ValidationError
		aerr *service.AnswersError
		perr *translate.PlatformError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Details: verr.Field})
	case errors.As(err, &aerr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: aerr.Error(), Errors: aerr.Errors})
	case errors.As(err, &perr):
		writeJSON(w, perr.HTTPStatus(), errorResponse{Error: perr.Message, Details: perr.Details()})
	case errors.Is(err, formgen.ErrEmptyPrompt), errors.Is(err, service.ErrUnknownPlatform):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFormNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Details: err.Error()})
	}
}
