package contacts

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// Notifier delivers a notification for a new inquiry. Delivery is best-effort:
// a failing notifier never fails the submission.
type Notifier interface {
	NotifyContact(ctx context.Context, contact *Contact) error
}

// Service exposes contact inquiry use cases.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
	Get(ctx context.Context, id uuid.UUID) (*Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int, error)
}

// SubmitRequest carries a public contact form submission.
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks the submission's required fields.
func (r SubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// Repository abstracts storage for contact inquiries.
type Repository interface {
	Create(ctx context.Context, record *Contact) (*Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
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

// WithNotifier attaches an inquiry notifier.
func WithNotifier(notifier Notifier) ServiceOption {
	return func(s *service) {
		s.notifier = notifier
	}
}

type service struct {
	repo     Repository
	notifier Notifier
	logger   interfaces.Logger
	now      func() time.Time
	id       func() uuid.UUID
}

// NewService constructs a contact inquiry service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and stores a new inquiry, then notifies best-effort.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := &Contact{
		ID:        s.id(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.now(),
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, created); err != nil {
			s.logger.Warn("contact notification failed", "contact_id", created.ID.String(), "error", err)
		}
	}
	return created, nil
}

// List returns all inquiries, newest first.
func (s *service) List(ctx context.Context) ([]*Contact, error) {
	return s.repo.List(ctx)
}

// Get loads one inquiry and marks it read on first view. The flag never
// transitions back to unread.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Contact, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			s.logger.Warn("mark contact read failed", "contact_id", id.String(), "error", err)
		} else {
			record.IsRead = true
		}
	}
	return record, nil
}

// Delete removes an inquiry permanently.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// CountUnread reports how many inquiries have not been viewed yet.
func (s *service) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}
