package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/domain"
	"github.com/nawras-digital/sitecms/internal/sections"
)

func (api *API) registerAdminPageRoutes(mux *http.ServeMux) {
	pages := joinPath(api.adminBase, "pages")
	secs := joinPath(api.adminBase, "sections")

	mux.HandleFunc("GET "+pages, api.handleListPages)
	mux.HandleFunc("POST "+pages, api.handleCreatePage)
	mux.HandleFunc("GET "+pages+"/{slug}", api.handleGetPage)

	mux.HandleFunc("POST "+secs, api.handleCreateSection)
	mux.HandleFunc("GET "+secs+"/{id}", api.handleGetSection)
	mux.HandleFunc("PUT "+secs+"/{id}", api.handleUpdateSection)
	mux.HandleFunc("PUT "+secs+"/{id}/visibility", api.handleSectionVisibility)
	mux.HandleFunc("PUT "+secs+"/{id}/order", api.handleSectionOrder)
}

func (api *API) requireSections(w http.ResponseWriter) bool {
	if api.sections == nil {
		writeServiceUnavailable(w, "page service not configured")
		return false
	}
	return true
}

func (api *API) handleListPages(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	records, err := api.sections.ListPages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type createPageRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (api *API) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	var req createPageRequest
	if !bindJSON(w, r, &req) {
		return
	}
	page, err := api.sections.CreatePage(r.Context(), sections.CreatePageRequest{
		Title: req.Title,
		Slug:  req.Slug,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (api *API) handleGetPage(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	page, err := api.sections.GetPage(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// sectionPayload is the wire shape for section content. The content member is
// decoded against the declared type after the envelope parses.
type sectionPayload struct {
	PageID    uuid.UUID       `json:"page_id"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Position  int             `json:"position"`
	IsVisible *bool           `json:"is_visible"`
	Content   json.RawMessage `json:"content"`
}

func (p sectionPayload) decodeContent() (sections.Content, error) {
	sectionType, ok := domain.ParseSectionType(p.Type)
	if !ok {
		return nil, sections.ErrUnknownSectionType
	}
	return sections.UnmarshalContent(sectionType, p.Content)
}

func (api *API) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	var req sectionPayload
	if !bindJSON(w, r, &req) {
		return
	}
	content, err := req.decodeContent()
	if err != nil {
		writeError(w, err)
		return
	}
	section, err := api.sections.CreateSection(r.Context(), sections.CreateSectionRequest{
		PageID:    req.PageID,
		Title:     req.Title,
		Position:  req.Position,
		IsVisible: req.IsVisible,
		Content:   content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (api *API) handleGetSection(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	section, err := api.sections.GetSection(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (api *API) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req sectionPayload
	if !bindJSON(w, r, &req) {
		return
	}
	content, err := req.decodeContent()
	if err != nil {
		writeError(w, err)
		return
	}
	section, err := api.sections.UpdateSection(r.Context(), sections.UpdateSectionRequest{
		SectionID: id,
		Content:   content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

type visibilityRequest struct {
	IsVisible bool `json:"is_visible"`
}

func (api *API) handleSectionVisibility(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req visibilityRequest
	if !bindJSON(w, r, &req) {
		return
	}
	section, err := api.sections.SetSectionVisibility(r.Context(), id, req.IsVisible)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

type orderRequest struct {
	Position int `json:"position"`
}

func (api *API) handleSectionOrder(w http.ResponseWriter, r *http.Request) {
	if !api.requireSections(w) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req orderRequest
	if !bindJSON(w, r, &req) {
		return
	}
	section, err := api.sections.ReorderSection(r.Context(), id, req.Position)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}
