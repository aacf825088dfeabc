package http

import (
	"fmt"
	"net/http"

	"depanku-backend/internal/service"
)

// SyncHandler exposes manual search index maintenance endpoints.
type SyncHandler struct {
	svc service.OpportunityService
}

func NewSyncHandler(svc service.OpportunityService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// Resync handles POST /api/sync/algolia. It replaces the index contents
// with every currently published opportunity.
func (h *SyncHandler) Resync(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.ResyncAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("Synced %d opportunities to search index", count),
		"count":   count,
	})
}

// Clear handles POST /api/sync/algolia/clear.
func (h *SyncHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !h.svc.ClearIndex(r.Context()) {
		writeError(w, http.StatusBadGateway, "search index clear failed")
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"message": "Search index cleared"})
}
