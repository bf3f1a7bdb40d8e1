package httpapi

import (
	"net/http"
	"path"
	"strings"

	"github.com/nawras-digital/sitecms/internal/visits"
)

var staticExtensions = map[string]struct{}{
	".css": {}, ".js": {}, ".map": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".ico": {},
	".woff": {}, ".woff2": {}, ".ttf": {},
}

// recordVisits wraps the route table with best-effort page view recording.
// Back-office traffic, auth flows, static assets, and the tracking endpoints
// themselves are never counted, and a recording failure never affects the
// wrapped response.
func (api *API) recordVisits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.visits != nil && api.shouldRecord(r) {
			_, _, err := api.visits.Record(r.Context(), visits.RecordRequest{
				IP:        GetClientIP(r),
				Path:      r.URL.Path,
				UserAgent: r.UserAgent(),
				Referrer:  r.Referer(),
			})
			if err != nil {
				api.logger.Warn("visit recording failed", "path", r.URL.Path, "error", err)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (api *API) shouldRecord(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	p := r.URL.Path
	if strings.HasPrefix(p, api.adminBase) || strings.HasPrefix(p, "/auth") {
		return false
	}
	for _, excluded := range []string{"track", "track-visit", "stats", "upload", "contact"} {
		if p == joinPath(api.basePath, excluded) {
			return false
		}
	}
	if _, ok := staticExtensions[strings.ToLower(path.Ext(p))]; ok {
		return false
	}
	return true
}
