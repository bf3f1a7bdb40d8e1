package httpapi

import (
	"net/http"

	"github.com/nawras-digital/sitecms/internal/catalog"
)

func (api *API) registerAdminCatalogRoutes(mux *http.ServeMux) {
	registerEntityRoutes(mux, joinPath(api.adminBase, "services"), api.services)
	registerEntityRoutes(mux, joinPath(api.adminBase, "features"), api.features)
	registerEntityRoutes(mux, joinPath(api.adminBase, "clients"), api.clients)
}

// registerEntityRoutes wires the shared CRUD and visibility surface for one
// entity collection. Passing all=true on the list endpoint includes hidden
// records for back-office views.
func registerEntityRoutes[T catalog.Record](mux *http.ServeMux, root string, manager catalog.Manager[T]) {
	mux.HandleFunc("GET "+root, func(w http.ResponseWriter, r *http.Request) {
		if !requireManager(w, manager) {
			return
		}
		onlyActive := r.URL.Query().Get("all") == ""
		records, err := manager.List(r.Context(), onlyActive)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	})

	mux.HandleFunc("POST "+root, func(w http.ResponseWriter, r *http.Request) {
		if !requireManager(w, manager) {
			return
		}
		var req catalog.CreateRequest
		if !bindJSON(w, r, &req) {
			return
		}
		record, err := manager.Create(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	})

	mux.HandleFunc("GET "+root+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireManager(w, manager) {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		record, err := manager.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	})

	mux.HandleFunc("PUT "+root+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireManager(w, manager) {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req catalog.UpdateRequest
		if !bindJSON(w, r, &req) {
			return
		}
		record, err := manager.Update(r.Context(), id, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	})

	mux.HandleFunc("DELETE "+root+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireManager(w, manager) {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := manager.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST "+root+"/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
		if !requireManager(w, manager) {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		record, err := manager.ToggleVisibility(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	})
}

func requireManager[T catalog.Record](w http.ResponseWriter, manager catalog.Manager[T]) bool {
	if manager == nil {
		writeServiceUnavailable(w, "entity manager not configured")
		return false
	}
	return true
}
