package httpapi

import (
	"net/http"

	"github.com/nawras-digital/sitecms/internal/settings"
)

func (api *API) registerAdminContactRoutes(mux *http.ServeMux) {
	root := joinPath(api.adminBase, "contacts")

	mux.HandleFunc("GET "+root, api.handleListContacts)
	mux.HandleFunc("GET "+root+"/{id}", api.handleGetContact)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleDeleteContact)
}

func (api *API) requireContacts(w http.ResponseWriter) bool {
	if api.contacts == nil {
		writeServiceUnavailable(w, "contact service not configured")
		return false
	}
	return true
}

func (api *API) handleListContacts(w http.ResponseWriter, r *http.Request) {
	if !api.requireContacts(w) {
		return
	}
	records, err := api.contacts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleGetContact returns one inquiry. Viewing it marks it read.
func (api *API) handleGetContact(w http.ResponseWriter, r *http.Request) {
	if !api.requireContacts(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	record, err := api.contacts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if !api.requireContacts(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.contacts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) registerAdminSettingsRoutes(mux *http.ServeMux) {
	root := joinPath(api.adminBase, "settings")

	mux.HandleFunc("GET "+root, api.handleGetSettings)
	mux.HandleFunc("PUT "+root, api.handleUpdateSettings)
}

func (api *API) requireSettings(w http.ResponseWriter) bool {
	if api.settings == nil {
		writeServiceUnavailable(w, "settings service not configured")
		return false
	}
	return true
}

func (api *API) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if !api.requireSettings(w) {
		return
	}
	record, err := api.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !api.requireSettings(w) {
		return
	}
	var req settings.UpdateRequest
	if !bindJSON(w, r, &req) {
		return
	}
	record, err := api.settings.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
