package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/nawras-digital/sitecms/internal/cache"
	"github.com/nawras-digital/sitecms/internal/catalog"
	catalogcmd "github.com/nawras-digital/sitecms/internal/commands/catalog"
	contactcmd "github.com/nawras-digital/sitecms/internal/commands/contacts"
	sectioncmd "github.com/nawras-digital/sitecms/internal/commands/sections"
	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/internal/geoip"
	"github.com/nawras-digital/sitecms/internal/httpapi"
	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/internal/mailer"
	"github.com/nawras-digital/sitecms/internal/media"
	"github.com/nawras-digital/sitecms/internal/runtimeconfig"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/internal/settings"
	"github.com/nawras-digital/sitecms/internal/visits"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// Container wires repositories, services, and adapters. Every binding can be
// overridden through an Option before the container is finalised; anything
// left unset falls back to in-memory implementations so the module stays
// usable without external infrastructure.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	statsCache    interfaces.CacheProvider

	pageRepo     sections.PageRepository
	sectionRepo  sections.SectionRepository
	inputRepo    sections.InputRepository
	serviceRepo  catalog.Repository[*catalog.Service]
	featureRepo  catalog.Repository[*catalog.Feature]
	clientRepo   catalog.Repository[*catalog.Client]
	contactRepo  contacts.Repository
	settingsRepo settings.Repository
	visitRepo    visits.Repository

	mailSender  mailer.Sender
	notifier    contacts.Notifier
	geoResolver geoip.Resolver
	uploader    media.Uploader

	sectionSvc  sections.Service
	serviceSvc  catalog.Manager[*catalog.Service]
	featureSvc  catalog.Manager[*catalog.Feature]
	clientSvc   catalog.Manager[*catalog.Client]
	contactSvc  contacts.Service
	settingsSvc settings.Service
	visitSvc    visits.Service

	sectionCommands *sectioncmd.Commands
	serviceCommands *catalogcmd.Commands
	featureCommands *catalogcmd.Commands
	clientCommands  *catalogcmd.Commands
	contactDelete   *contactcmd.DeleteContactHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds every repository to the supplied database handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider supplies module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithStatsCache overrides the aggregate statistics cache.
func WithStatsCache(provider interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.statsCache = provider
	}
}

// WithMailSender overrides the transactional email sender.
func WithMailSender(sender mailer.Sender) Option {
	return func(c *Container) {
		c.mailSender = sender
	}
}

// WithGeoResolver overrides the IP geolocation resolver.
func WithGeoResolver(resolver geoip.Resolver) Option {
	return func(c *Container) {
		c.geoResolver = resolver
	}
}

// WithUploader overrides the media host uploader.
func WithUploader(uploader media.Uploader) Option {
	return func(c *Container) {
		c.uploader = uploader
	}
}

// NewContainer validates the configuration and assembles the service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		pageRepo:     sections.NewMemoryPageRepository(),
		sectionRepo:  sections.NewMemorySectionRepository(),
		inputRepo:    sections.NewMemoryInputRepository(),
		serviceRepo:  catalog.NewMemoryRepository(newServiceRecord),
		featureRepo:  catalog.NewMemoryRepository(newFeatureRecord),
		clientRepo:   catalog.NewMemoryRepository(newClientRecord),
		contactRepo:  contacts.NewMemoryRepository(),
		settingsRepo: settings.NewMemoryRepository(),
		visitRepo:    visits.NewMemoryRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureAdapters()
	c.configureServices()

	return c, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}

	if c.statsCache == nil {
		c.statsCache = cache.NewMemory()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.pageRepo = sections.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.sectionRepo = sections.NewBunSectionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.inputRepo = sections.NewBunInputRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.serviceRepo = catalog.NewBunRepositoryWithCache(c.bunDB, newServiceRecord, c.cacheService, c.keySerializer)
	c.featureRepo = catalog.NewBunRepositoryWithCache(c.bunDB, newFeatureRecord, c.cacheService, c.keySerializer)
	c.clientRepo = catalog.NewBunRepositoryWithCache(c.bunDB, newClientRecord, c.cacheService, c.keySerializer)
	c.contactRepo = contacts.NewBunRepository(c.bunDB)
	c.settingsRepo = settings.NewBunRepository(c.bunDB)
	c.visitRepo = visits.NewBunRepository(c.bunDB)
}

func (c *Container) configureAdapters() {
	if c.mailSender == nil {
		if c.Config.Mail.Enabled {
			c.mailSender = mailer.NewAPISender(mailer.Config{
				Endpoint: c.Config.Mail.Endpoint,
				APIKey:   c.Config.Mail.APIKey,
				From:     c.Config.Mail.From,
				FromName: c.Config.Mail.FromName,
			}, mailer.WithLogger(logging.ModuleLogger(c.loggerProvider, "sitecms.mailer")))
		} else {
			c.mailSender = mailer.Noop{}
		}
	}
	if c.notifier == nil {
		c.notifier = mailer.NewContactNotifier(c.mailSender, c.Config.Mail.ContactRecipient)
	}

	if c.geoResolver == nil {
		if base := strings.TrimSpace(c.Config.Visits.GeoBaseURL); base != "" {
			c.geoResolver = geoip.NewHTTPResolver(base,
				geoip.WithLogger(logging.ModuleLogger(c.loggerProvider, "sitecms.geoip")))
		}
	}

	if c.uploader == nil && c.Config.Uploads.Enabled {
		c.uploader = media.NewHostUploader(media.Config{
			Endpoint: c.Config.Uploads.Endpoint,
			APIKey:   c.Config.Uploads.APIKey,
			MaxSize:  c.Config.Uploads.MaxSize,
		}, media.WithLogger(logging.ModuleLogger(c.loggerProvider, "sitecms.media")))
	}
}

func (c *Container) configureServices() {
	if c.sectionSvc == nil {
		c.sectionSvc = sections.NewService(c.pageRepo, c.sectionRepo, c.inputRepo,
			sections.WithLogger(logging.SectionsLogger(c.loggerProvider)))
	}

	catalogLogger := logging.CatalogLogger(c.loggerProvider)
	if c.serviceSvc == nil {
		c.serviceSvc = catalog.NewManager(c.serviceRepo, newServiceRecord,
			catalog.WithLogger[*catalog.Service](catalogLogger))
	}
	if c.featureSvc == nil {
		c.featureSvc = catalog.NewManager(c.featureRepo, newFeatureRecord,
			catalog.WithLogger[*catalog.Feature](catalogLogger))
	}
	if c.clientSvc == nil {
		c.clientSvc = catalog.NewManager(c.clientRepo, newClientRecord,
			catalog.WithLogger[*catalog.Client](catalogLogger))
	}

	if c.contactSvc == nil {
		c.contactSvc = contacts.NewService(c.contactRepo,
			contacts.WithNotifier(c.notifier),
			contacts.WithLogger(logging.ContactsLogger(c.loggerProvider)))
	}

	if c.settingsSvc == nil {
		c.settingsSvc = settings.NewService(c.settingsRepo,
			settings.WithLogger(logging.SettingsLogger(c.loggerProvider)))
	}

	if c.visitSvc == nil {
		visitOpts := []visits.ServiceOption{
			visits.WithLogger(logging.VisitsLogger(c.loggerProvider)),
		}
		if c.Config.Visits.DedupWindow > 0 {
			visitOpts = append(visitOpts, visits.WithDedupWindow(c.Config.Visits.DedupWindow))
		}
		if c.geoResolver != nil {
			visitOpts = append(visitOpts, visits.WithResolver(c.geoResolver))
		}
		if c.statsCache != nil {
			statsTTL := c.Config.Cache.StatsTTL
			if statsTTL <= 0 {
				statsTTL = time.Minute
			}
			visitOpts = append(visitOpts, visits.WithStatsCache(c.statsCache, statsTTL))
		}
		c.visitSvc = visits.NewService(c.visitRepo, visitOpts...)
	}

	if c.sectionCommands == nil {
		c.sectionCommands = sectioncmd.NewCommands(c.sectionSvc, logging.SectionsLogger(c.loggerProvider))
	}
	if c.serviceCommands == nil {
		c.serviceCommands = catalogcmd.NewCommands(c.serviceSvc, "services", catalogLogger)
	}
	if c.featureCommands == nil {
		c.featureCommands = catalogcmd.NewCommands(c.featureSvc, "features", catalogLogger)
	}
	if c.clientCommands == nil {
		c.clientCommands = catalogcmd.NewCommands(c.clientSvc, "clients", catalogLogger)
	}
	if c.contactDelete == nil {
		c.contactDelete = contactcmd.NewDeleteContactHandler(c.contactSvc, logging.ContactsLogger(c.loggerProvider))
	}
}

func newServiceRecord() *catalog.Service { return &catalog.Service{} }
func newFeatureRecord() *catalog.Feature { return &catalog.Feature{} }
func newClientRecord() *catalog.Client   { return &catalog.Client{} }

// SectionService returns the page and section content service.
func (c *Container) SectionService() sections.Service {
	return c.sectionSvc
}

// ServiceManager returns the service entity manager.
func (c *Container) ServiceManager() catalog.Manager[*catalog.Service] {
	return c.serviceSvc
}

// FeatureManager returns the feature entity manager.
func (c *Container) FeatureManager() catalog.Manager[*catalog.Feature] {
	return c.featureSvc
}

// ClientManager returns the client entity manager.
func (c *Container) ClientManager() catalog.Manager[*catalog.Client] {
	return c.clientSvc
}

// ContactService returns the contact inquiry service.
func (c *Container) ContactService() contacts.Service {
	return c.contactSvc
}

// SettingsService returns the site settings service.
func (c *Container) SettingsService() settings.Service {
	return c.settingsSvc
}

// VisitService returns the visit recorder and aggregator.
func (c *Container) VisitService() visits.Service {
	return c.visitSvc
}

// SectionCommands returns the section command handlers for dispatcher
// integrations.
func (c *Container) SectionCommands() *sectioncmd.Commands {
	return c.sectionCommands
}

// ServiceCommands returns the service entity command handlers.
func (c *Container) ServiceCommands() *catalogcmd.Commands {
	return c.serviceCommands
}

// FeatureCommands returns the feature entity command handlers.
func (c *Container) FeatureCommands() *catalogcmd.Commands {
	return c.featureCommands
}

// ClientCommands returns the client entity command handlers.
func (c *Container) ClientCommands() *catalogcmd.Commands {
	return c.clientCommands
}

// ContactDeleteCommand returns the contact deletion command handler.
func (c *Container) ContactDeleteCommand() *contactcmd.DeleteContactHandler {
	return c.contactDelete
}

// Uploader returns the configured media uploader, nil when uploads are disabled.
func (c *Container) Uploader() media.Uploader {
	return c.uploader
}

// MailSender returns the configured email sender.
func (c *Container) MailSender() mailer.Sender {
	return c.mailSender
}

// LoggerProvider returns the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB returns the bound database handle, nil when running on memory repositories.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// HTTPHandler assembles the public and admin API on one handler.
func (c *Container) HTTPHandler() *httpapi.API {
	return httpapi.New(
		httpapi.WithBasePath(c.Config.HTTP.BasePath),
		httpapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		httpapi.WithSectionService(c.sectionSvc),
		httpapi.WithServiceManager(c.serviceSvc),
		httpapi.WithFeatureManager(c.featureSvc),
		httpapi.WithClientManager(c.clientSvc),
		httpapi.WithContactService(c.contactSvc),
		httpapi.WithSettingsService(c.settingsSvc),
		httpapi.WithVisitService(c.visitSvc),
		httpapi.WithUploader(c.uploader),
	)
}
