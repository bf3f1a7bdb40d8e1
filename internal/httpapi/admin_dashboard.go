package httpapi

import (
	"net/http"

	"github.com/nawras-digital/sitecms/internal/visits"
)

func (api *API) registerAdminDashboardRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+joinPath(api.adminBase, "dashboard"), api.handleDashboard)
}

type dashboardResponse struct {
	Visits         *visits.Stats `json:"visits"`
	UnreadContacts int           `json:"unread_contacts"`
}

// handleDashboard aggregates the back-office landing numbers in one call.
func (api *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if api.visits == nil || api.contacts == nil {
		writeServiceUnavailable(w, "dashboard services not configured")
		return
	}
	stats, err := api.visits.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	unread, err := api.contacts.CountUnread(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		Visits:         stats,
		UnreadContacts: unread,
	})
}
