package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/catalog"
	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/internal/media"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/internal/visits"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Issues  map[string]string `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeServiceUnavailable(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{
		Error:   "service_unavailable",
		Message: message,
	})
}

// bindJSON decodes the request body into target, answering the request itself
// when the payload is not valid JSON.
func bindJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := decodeJSON(r, target); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_json",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

// pathID extracts and validates the {id} path segment.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_id",
			Message: "id must be a valid uuid",
		})
		return uuid.Nil, false
	}
	return id, true
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var sectionNotFound *sections.NotFoundError
	if errors.As(err, &sectionNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: sectionNotFound.Error(),
		}
	}

	var catalogNotFound *catalog.NotFoundError
	if errors.As(err, &catalogNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: catalogNotFound.Error(),
		}
	}

	var contactNotFound *contacts.NotFoundError
	if errors.As(err, &contactNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: contactNotFound.Error(),
		}
	}

	if errors.Is(err, sections.ErrPageSlugExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		issues := make(map[string]string, len(verrs))
		for field, fieldErr := range verrs {
			issues[field] = fieldErr.Error()
		}
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  issues,
		}
	}

	if errors.Is(err, media.ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge, errorResponse{
			Error:   "file_too_large",
			Message: err.Error(),
		}
	}

	if errors.Is(err, sections.ErrPageSlugRequired) ||
		errors.Is(err, sections.ErrPageSlugInvalid) ||
		errors.Is(err, sections.ErrSectionIDRequired) ||
		errors.Is(err, sections.ErrSectionRequired) ||
		errors.Is(err, sections.ErrPositionInvalid) ||
		errors.Is(err, sections.ErrContentMismatch) ||
		errors.Is(err, sections.ErrUnknownSectionType) ||
		errors.Is(err, catalog.ErrIDRequired) ||
		errors.Is(err, contacts.ErrIDRequired) ||
		errors.Is(err, visits.ErrIPRequired) ||
		errors.Is(err, visits.ErrPathRequired) ||
		errors.Is(err, media.ErrNoFile) ||
		errors.Is(err, media.ErrExtensionNotAllowed) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}
