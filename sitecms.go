package sitecms

import (
	"net/http"

	"github.com/nawras-digital/sitecms/internal/catalog"
	catalogcmd "github.com/nawras-digital/sitecms/internal/commands/catalog"
	contactcmd "github.com/nawras-digital/sitecms/internal/commands/contacts"
	sectioncmd "github.com/nawras-digital/sitecms/internal/commands/sections"
	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/internal/di"
	"github.com/nawras-digital/sitecms/internal/media"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/internal/settings"
	"github.com/nawras-digital/sitecms/internal/visits"
)

// SectionService exports the page and section content contract for consumers
// of the sitecms package.
type SectionService = sections.Service

// ServiceManager exports the service entity manager contract.
type ServiceManager = catalog.Manager[*catalog.Service]

// FeatureManager exports the feature entity manager contract.
type FeatureManager = catalog.Manager[*catalog.Feature]

// ClientManager exports the client entity manager contract.
type ClientManager = catalog.Manager[*catalog.Client]

// ContactService exports the contact inquiry contract.
type ContactService = contacts.Service

// SettingsService exports the site settings contract.
type SettingsService = settings.Service

// VisitService exports the visit recorder contract.
type VisitService = visits.Service

// Uploader exports the media host uploader contract.
type Uploader = media.Uploader

// Module represents the top level site runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a site module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sections returns the configured page and section content service.
func (m *Module) Sections() SectionService {
	return m.container.SectionService()
}

// Services returns the configured service entity manager.
func (m *Module) Services() ServiceManager {
	return m.container.ServiceManager()
}

// Features returns the configured feature entity manager.
func (m *Module) Features() FeatureManager {
	return m.container.FeatureManager()
}

// Clients returns the configured client entity manager.
func (m *Module) Clients() ClientManager {
	return m.container.ClientManager()
}

// Contacts returns the configured contact inquiry service.
func (m *Module) Contacts() ContactService {
	return m.container.ContactService()
}

// Settings returns the configured site settings service.
func (m *Module) Settings() SettingsService {
	return m.container.SettingsService()
}

// Visits returns the configured visit recorder and aggregator.
func (m *Module) Visits() VisitService {
	return m.container.VisitService()
}

// Uploads returns the configured media uploader, nil when uploads are disabled.
func (m *Module) Uploads() Uploader {
	return m.container.Uploader()
}

// SectionCommands returns the section command handlers for hosts that route
// mutations through a command dispatcher.
func (m *Module) SectionCommands() *sectioncmd.Commands {
	return m.container.SectionCommands()
}

// ServiceCommands returns the service entity command handlers.
func (m *Module) ServiceCommands() *catalogcmd.Commands {
	return m.container.ServiceCommands()
}

// FeatureCommands returns the feature entity command handlers.
func (m *Module) FeatureCommands() *catalogcmd.Commands {
	return m.container.FeatureCommands()
}

// ClientCommands returns the client entity command handlers.
func (m *Module) ClientCommands() *catalogcmd.Commands {
	return m.container.ClientCommands()
}

// ContactDeleteCommand returns the contact deletion command handler.
func (m *Module) ContactDeleteCommand() *contactcmd.DeleteContactHandler {
	return m.container.ContactDeleteCommand()
}

// Handler returns the assembled HTTP API, public and admin endpoints included.
func (m *Module) Handler() http.Handler {
	return m.container.HTTPHandler().Handler()
}
