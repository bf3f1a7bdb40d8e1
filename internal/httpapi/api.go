package httpapi

import (
	"net/http"
	"strings"

	"github.com/nawras-digital/sitecms/internal/catalog"
	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/internal/media"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/internal/settings"
	"github.com/nawras-digital/sitecms/internal/visits"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// API registers the public site endpoints and the admin back-office endpoints
// on one mux. Callers mount the result behind their own auth layer for the
// admin base path.
type API struct {
	basePath  string
	adminBase string
	logger    interfaces.Logger

	sections sections.Service
	services catalog.Manager[*catalog.Service]
	features catalog.Manager[*catalog.Feature]
	clients  catalog.Manager[*catalog.Client]
	contacts contacts.Service
	settings settings.Service
	visits   visits.Service
	uploader media.Uploader

	adminGuard func(http.Handler) http.Handler
}

// Option mutates the API configuration.
type Option func(*API)

// WithBasePath overrides the public base path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithLogger attaches a logger to the API.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithSectionService wires the page and section content service.
func WithSectionService(service sections.Service) Option {
	return func(api *API) {
		api.sections = service
	}
}

// WithServiceManager wires the service entity manager.
func WithServiceManager(manager catalog.Manager[*catalog.Service]) Option {
	return func(api *API) {
		api.services = manager
	}
}

// WithFeatureManager wires the feature entity manager.
func WithFeatureManager(manager catalog.Manager[*catalog.Feature]) Option {
	return func(api *API) {
		api.features = manager
	}
}

// WithClientManager wires the client entity manager.
func WithClientManager(manager catalog.Manager[*catalog.Client]) Option {
	return func(api *API) {
		api.clients = manager
	}
}

// WithContactService wires the contact inquiry service.
func WithContactService(service contacts.Service) Option {
	return func(api *API) {
		api.contacts = service
	}
}

// WithSettingsService wires the site settings service.
func WithSettingsService(service settings.Service) Option {
	return func(api *API) {
		api.settings = service
	}
}

// WithVisitService wires the visit recorder and aggregator.
func WithVisitService(service visits.Service) Option {
	return func(api *API) {
		api.visits = service
	}
}

// WithUploader wires the media host uploader.
func WithUploader(uploader media.Uploader) Option {
	return func(api *API) {
		api.uploader = uploader
	}
}

// WithAdminGuard wraps every admin route with the supplied middleware. Hosts
// use this to mount their own authentication in front of the back-office.
func WithAdminGuard(guard func(http.Handler) http.Handler) Option {
	return func(api *API) {
		api.adminGuard = guard
	}
}

// New constructs the API.
func New(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	api.adminBase = joinPath(api.basePath, "admin")
	return api
}

// Handler builds the route table. Public page reads pass through the visit
// recording middleware, and the admin subtree passes through the guard when
// one is configured.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.registerPublicRoutes(mux)

	adminMux := http.NewServeMux()
	api.registerAdminPageRoutes(adminMux)
	api.registerAdminCatalogRoutes(adminMux)
	api.registerAdminContactRoutes(adminMux)
	api.registerAdminSettingsRoutes(adminMux)
	api.registerAdminDashboardRoutes(adminMux)

	var admin http.Handler = adminMux
	if api.adminGuard != nil {
		admin = api.adminGuard(admin)
	}
	mux.Handle(api.adminBase+"/", admin)

	return api.recordVisits(mux)
}
