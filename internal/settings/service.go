package settings

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// ErrNotFound indicates the settings row has not been stored yet. Callers of
// the service never see it; Get falls back to defaults.
var ErrNotFound = errors.New("settings: settings row not found")

// Service exposes the site settings singleton.
type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req UpdateRequest) (*Settings, error)
}

// UpdateRequest carries a partial settings update; nil fields keep their
// stored value.
type UpdateRequest struct {
	SiteName    *string       `json:"site_name"`
	Logo        *string       `json:"logo"`
	Email       *string       `json:"email"`
	Phone       *string       `json:"phone"`
	AddressAr   *string       `json:"address_ar"`
	AddressEn   *string       `json:"address_en"`
	SocialLinks *[]SocialLink `json:"social_links"`
}

// Validate rejects malformed field values.
func (r UpdateRequest) Validate() error {
	errs := validation.Errors{}
	if r.SiteName != nil && strings.TrimSpace(*r.SiteName) == "" {
		errs["site_name"] = validation.NewError("settings.field_blank", "value must not be blank")
	}
	if r.Email != nil && *r.Email != "" {
		if err := is.Email.Validate(*r.Email); err != nil {
			errs["email"] = validation.NewError("settings.email_invalid", "must be a valid email address")
		}
	}
	if r.SocialLinks != nil {
		for _, link := range *r.SocialLinks {
			if strings.TrimSpace(link.Platform) == "" || strings.TrimSpace(link.URL) == "" {
				errs["social_links"] = validation.NewError("settings.social_link_invalid", "platform and url are required")
				break
			}
		}
	}
	return errs.Filter()
}

// Repository abstracts storage for the settings singleton. Get returns
// ErrNotFound when the row has never been written; Upsert writes the row at
// the fixed identifier.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, record *Settings) (*Settings, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp updates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaults overrides the settings served before the first write.
func WithDefaults(defaults Settings) ServiceOption {
	return func(s *service) {
		s.defaults = defaults
	}
}

type service struct {
	repo     Repository
	defaults Settings
	logger   interfaces.Logger
	now      func() time.Time
}

// NewService constructs the settings service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		defaults: Defaults(),
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the settings served before the singleton is first written.
func Defaults() Settings {
	return Settings{
		ID:          SingletonID,
		SiteName:    "Nawras Digital",
		SocialLinks: []SocialLink{},
	}
}

// Get returns the stored settings, or the defaults when nothing has been
// written yet.
func (s *service) Get(ctx context.Context) (*Settings, error) {
	record, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			defaults := s.defaults
			return &defaults, nil
		}
		return nil, err
	}
	return record, nil
}

// Update applies the provided fields over the current settings and upserts the
// row at the fixed identifier.
func (s *service) Update(ctx context.Context, req UpdateRequest) (*Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.SiteName != nil {
		current.SiteName = strings.TrimSpace(*req.SiteName)
	}
	if req.Logo != nil {
		current.Logo = strings.TrimSpace(*req.Logo)
	}
	if req.Email != nil {
		current.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		current.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.AddressAr != nil {
		current.AddressAr = strings.TrimSpace(*req.AddressAr)
	}
	if req.AddressEn != nil {
		current.AddressEn = strings.TrimSpace(*req.AddressEn)
	}
	if req.SocialLinks != nil {
		current.SocialLinks = *req.SocialLinks
	}

	current.ID = SingletonID
	current.UpdatedAt = s.now()
	return s.repo.Upsert(ctx, current)
}
