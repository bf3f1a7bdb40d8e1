package httpapi

import (
	"net/http"

	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/internal/media"
	"github.com/nawras-digital/sitecms/internal/visits"
)

func (api *API) registerPublicRoutes(mux *http.ServeMux) {
	root := api.basePath

	mux.HandleFunc("GET "+joinPath(root, "pages")+"/{slug}", api.handlePublicPage)
	mux.HandleFunc("POST "+joinPath(root, "contact"), api.handleSubmitContact)
	mux.HandleFunc("POST "+joinPath(root, "track"), api.handleTrackVisit)
	mux.HandleFunc("POST "+joinPath(root, "track-visit"), api.handleTrackVisit)
	mux.HandleFunc("GET "+joinPath(root, "stats"), api.handleVisitStats)
	mux.HandleFunc("POST "+joinPath(root, "upload"), api.handleUpload)
}

func (api *API) handlePublicPage(w http.ResponseWriter, r *http.Request) {
	if api.sections == nil {
		writeServiceUnavailable(w, "page service not configured")
		return
	}
	view, err := api.sections.PublicPage(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *API) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	if api.contacts == nil {
		writeServiceUnavailable(w, "contact service not configured")
		return
	}
	var req contacts.SubmitRequest
	if !bindJSON(w, r, &req) {
		return
	}
	record, err := api.contacts.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

type trackRequest struct {
	Path        string `json:"path"`
	Referrer    string `json:"referrer"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
}

type trackResponse struct {
	Recorded bool `json:"recorded"`
}

// handleTrackVisit records one page view reported by the public site. The
// client IP and user agent come from the request itself, not the body.
func (api *API) handleTrackVisit(w http.ResponseWriter, r *http.Request) {
	if api.visits == nil {
		writeServiceUnavailable(w, "visit service not configured")
		return
	}
	var req trackRequest
	if !bindJSON(w, r, &req) {
		return
	}
	_, recorded, err := api.visits.Record(r.Context(), visits.RecordRequest{
		IP:          GetClientIP(r),
		Path:        req.Path,
		UserAgent:   r.UserAgent(),
		Referrer:    req.Referrer,
		CountryCode: req.CountryCode,
		CountryName: req.CountryName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trackResponse{Recorded: recorded})
}

func (api *API) handleVisitStats(w http.ResponseWriter, r *http.Request) {
	if api.visits == nil {
		writeServiceUnavailable(w, "visit service not configured")
		return
	}
	stats, err := api.visits.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleUpload proxies a multipart file to the configured media host and
// returns the hosted URL.
func (api *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	if api.uploader == nil {
		writeServiceUnavailable(w, "uploader not configured")
		return
	}
	if err := r.ParseMultipartForm(media.DefaultMaxSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_multipart", Message: "request body must be multipart form data"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, media.ErrNoFile)
		return
	}
	defer file.Close()

	result, err := api.uploader.Upload(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
