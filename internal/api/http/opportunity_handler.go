package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/service"
)

// OpportunityHandler exposes the opportunity lifecycle over HTTP.
type OpportunityHandler struct {
	svc service.OpportunityService
}

func NewOpportunityHandler(svc service.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{svc: svc}
}

// List handles GET /api/opportunities
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	opportunities, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"data": opportunities})
}

// Create handles POST /api/opportunities. A draft status routes through the
// autosave deduplication; any other status is a publish attempt.
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var body domain.Opportunity
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body.ID = ""
	body.OwnerID = user.UID
	body.OwnerEmail = user.Email
	body.ModerationNotes = ""

	opp, created, rej, err := h.svc.Create(r.Context(), &body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rej != nil {
		writeRejection(w, rej)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeSuccess(w, status, envelope{"id": opp.ID, "created": created, "data": opp})
}

// Get handles GET /api/opportunities/{id}
func (h *OpportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	opp, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"data": opp})
}

// Update handles PUT /api/opportunities/{id}
func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var patch domain.OpportunityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opp, rej, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], user.UID, &patch)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if rej != nil {
		writeRejection(w, rej)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"message": "Opportunity updated successfully", "data": opp})
}

// Delete handles DELETE /api/opportunities/{id}
func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"], user.UID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"message": "Opportunity deleted successfully"})
}

// Publish handles POST /api/opportunities/{id}/publish
func (h *OpportunityHandler) Publish(w http.ResponseWriter, r *http.Request) {
	_, rej, err := h.svc.Publish(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if rej != nil {
		writeRejection(w, rej)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"message": "Opportunity published successfully"})
}

// Unpublish handles POST /api/opportunities/{id}/unpublish
func (h *OpportunityHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	alreadyDraft, err := h.svc.Unpublish(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if alreadyDraft {
		writeSuccess(w, http.StatusOK, envelope{"message": "Opportunity is already a draft"})
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"message": "Opportunity unpublished successfully"})
}

// Mine handles GET /api/opportunities/mine?status=
func (h *OpportunityHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	opportunities, err := h.svc.ListByOwner(r.Context(), user.UID, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"data": opportunities})
}

// Templates handles GET /api/opportunities/templates
func (h *OpportunityHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, envelope{"data": domain.OpportunityTemplates})
}

// TagPresets handles GET /api/opportunities/presets/tags
func (h *OpportunityHandler) TagPresets(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, envelope{"data": domain.TagPresets})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Invalid transitions are client errors with specific messages, never 500s.
func (h *OpportunityHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Opportunity not found")
	case errors.Is(err, service.ErrAlreadyPublished):
		writeError(w, http.StatusBadRequest, "Opportunity is already published")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Only the owner may modify this opportunity")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Requested status is not allowed")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
