package http

import (
	"encoding/json"
	"net/http"

	"depanku-backend/internal/logger"
	"depanku-backend/internal/service"
)

// Every response uses the {success: bool, ...} envelope.
type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, fields envelope) {
	payload := envelope{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "error": message})
}

// writeRejection renders a moderation rejection: a structured, actionable
// outcome with the enumerated issues, never a bare error.
func writeRejection(w http.ResponseWriter, rej *service.Rejection) {
	writeJSON(w, http.StatusBadRequest, envelope{
		"success":          false,
		"status":           "rejected",
		"issues":           rej.Issues,
		"moderation_notes": rej.Notes,
	})
}
