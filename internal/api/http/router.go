package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"depanku-backend/internal/security"
	"depanku-backend/internal/service"
)

// NewRouter wires every HTTP route. Read endpoints for the public catalog
// are unauthenticated; everything that mutates state requires a verified
// bearer token.
func NewRouter(
	opportunities service.OpportunityService,
	applications service.ApplicationService,
	verifier security.TokenVerifier,
) *mux.Router {
	oh := NewOpportunityHandler(opportunities)
	ah := NewApplicationHandler(applications)
	sh := NewSyncHandler(opportunities)

	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return RequireAuth(verifier, next)
	}

	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, envelope{"status": "healthy"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Static routes under /opportunities must register before the {id}
	// matcher or mux resolves "mine" as an id.
	api.HandleFunc("/opportunities/templates", oh.Templates).Methods(http.MethodGet)
	api.HandleFunc("/opportunities/presets/tags", oh.TagPresets).Methods(http.MethodGet)
	api.HandleFunc("/opportunities/mine", auth(oh.Mine)).Methods(http.MethodGet)

	api.HandleFunc("/opportunities", oh.List).Methods(http.MethodGet)
	api.HandleFunc("/opportunities", auth(oh.Create)).Methods(http.MethodPost)
	api.HandleFunc("/opportunities/{id}", oh.Get).Methods(http.MethodGet)
	api.HandleFunc("/opportunities/{id}", auth(oh.Update)).Methods(http.MethodPut)
	api.HandleFunc("/opportunities/{id}", auth(oh.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/opportunities/{id}/publish", auth(oh.Publish)).Methods(http.MethodPost)
	api.HandleFunc("/opportunities/{id}/unpublish", auth(oh.Unpublish)).Methods(http.MethodPost)
	api.HandleFunc("/opportunities/{id}/applications", auth(ah.ForOpportunity)).Methods(http.MethodGet)

	api.HandleFunc("/applications", auth(ah.Submit)).Methods(http.MethodPost)
	api.HandleFunc("/applications/me", auth(ah.Mine)).Methods(http.MethodGet)

	api.HandleFunc("/sync/algolia", auth(sh.Resync)).Methods(http.MethodPost)
	api.HandleFunc("/sync/algolia/clear", auth(sh.Clear)).Methods(http.MethodPost)

	return r
}
