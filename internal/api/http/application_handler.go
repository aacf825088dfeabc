package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/service"
)

// ApplicationHandler exposes application submission and review over HTTP.
type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type submitApplicationRequest struct {
	OpportunityID string                `json:"opportunity_id"`
	Responses     []domain.FormResponse `json:"responses"`
}

// Submit handles POST /api/applications. Resubmitting to the same
// opportunity overwrites the previous responses.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body submitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.OpportunityID == "" {
		writeError(w, http.StatusBadRequest, "opportunity_id is required")
		return
	}

	app, err := h.svc.Submit(r.Context(), body.OpportunityID, user.UID, user.Email, body.Responses)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "Opportunity not found")
		case errors.Is(err, service.ErrNotPublished):
			writeError(w, http.StatusBadRequest, "Applications are only accepted for published opportunities")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"id": app.ID, "data": app})
}

// Mine handles GET /api/applications/me
func (h *ApplicationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	apps, err := h.svc.ListByApplicant(r.Context(), user.UID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"data": apps})
}

// ForOpportunity handles GET /api/opportunities/{id}/applications.
// Only the opportunity owner may list applicants.
func (h *ApplicationHandler) ForOpportunity(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	apps, err := h.svc.ListByOpportunity(r.Context(), mux.Vars(r)["id"], user.UID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "Opportunity not found")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Only the owner may view applications")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"data": apps})
}
