package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"formsmith/internal/model"
	"formsmith/internal/service"
	"formsmith/internal/translate"
	"formsmith/internal/transport/rest/middleware"
)

// GoogleTokenHeader carries the delegated Google token on JWT-authenticated
// routes, where Authorization already holds the user token.
const GoogleTokenHeader = "X-Google-Access-Token"

// PlatformHandler handles publishing to external platforms
type PlatformHandler struct {
	publishSvc   *service.PublishService
	sheetDefault bool
}

// NewPlatformHandler creates a new platform handler
func NewPlatformHandler(publishSvc *service.PublishService, sheetDefault bool) *PlatformHandler {
	return &PlatformHandler{publishSvc: publishSvc, sheetDefault: sheetDefault}
}

// PlatformFormRequest is the body of the stateless platform-create endpoints
type PlatformFormRequest struct {
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Questions         []model.Question `json:"questions"`
	CreateSpreadsheet *bool            `json:"createSpreadsheet,omitempty"`
}

// PublishRequest is the body of POST /v1/forms/{formId}/publish
type PublishRequest struct {
	Platforms         []string `json:"platforms"`
	CreateSpreadsheet *bool    `json:"createSpreadsheet,omitempty"`
}

func (h *PlatformHandler) wantSheet(flag *bool) bool {
	if flag != nil {
		return *flag
	}
	return h.sheetDefault
}

// CreateForm handles POST /v1/platforms/{platform}/forms. The Google token,
// when needed, is the Authorization bearer.
func (h *PlatformHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	platform, ok := model.ParsePlatform(mux.Vars(r)["platform"])
	if !ok {
		writeError(w, http.StatusNotFound, "unknown platform")
		return
	}

	var req PlatformFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creds := translate.Credentials{}
	if platform == model.PlatformGoogle {
		creds.AccessToken = middleware.BearerToken(r)
		if creds.AccessToken == "" {
			writeError(w, http.StatusUnauthorized, "missing Google access token")
			return
		}
		creds.CreateSpreadsheet = h.wantSheet(req.CreateSpreadsheet)
	}

	form := &model.Form{Title: req.Title, Description: req.Description, Questions: req.Questions}
	res, err := h.publishSvc.PublishDirect(r.Context(), platform, form, creds)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Publish handles POST /v1/forms/{formId}/publish
func (h *PlatformHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	platforms := make([]model.Platform, 0, len(req.Platforms))
	for _, name := range req.Platforms {
		p, ok := model.ParsePlatform(name)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown platform", Details: name})
			return
		}
		platforms = append(platforms, p)
	}

	creds := translate.Credentials{
		AccessToken:       r.Header.Get(GoogleTokenHeader),
		CreateSpreadsheet: h.wantSheet(req.CreateSpreadsheet),
	}

	outcomes, err := h.publishSvc.PublishMany(r.Context(), mux.Vars(r)["formId"], userID, platforms, creds)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, publishStatusCode(outcomes), map[string]interface{}{"results": outcomes})
}

// publishStatusCode is 200 when any platform succeeded, else the first
// failure's status
func publishStatusCode(outcomes []service.PlatformOutcome) int {
	for _, o := range outcomes {
		if o.Publication != nil {
			return http.StatusOK
		}
	}
	for _, o := range outcomes {
		if o.Status != 0 {
			return o.Status
		}
	}
	return http.StatusBadGateway
}

// Publications handles GET /v1/forms/{formId}/publications
func (h *PlatformHandler) Publications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pubs, err := h.publishSvc.Publications(r.Context(), mux.Vars(r)["formId"], userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"publications": pubs})
}

// Status handles GET /v1/forms/{formId}/status/{platform}
func (h *PlatformHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	vars := mux.Vars(r)
	platform, ok := model.ParsePlatform(vars["platform"])
	if !ok {
		writeError(w, http.StatusNotFound, "unknown platform")
		return
	}

	status, err := h.publishSvc.Status(r.Context(), vars["formId"], userID, platform)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
