package catalog

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// CreateRequest carries the fields for a new catalog entity.
type CreateRequest struct {
	TitleAr    string `json:"title_ar"`
	TitleEn    string `json:"title_en"`
	SubtitleAr string `json:"subtitle_ar"`
	SubtitleEn string `json:"subtitle_en"`
	Image      string `json:"image"`
	IsActive   *bool  `json:"is_active"`
}

// Validate requires both title languages to be present.
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TitleAr, validation.Required, validation.By(notBlank)),
		validation.Field(&r.TitleEn, validation.Required, validation.By(notBlank)),
	)
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("catalog.field_blank", "value must not be blank")
	}
	return nil
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	TitleAr    *string `json:"title_ar"`
	TitleEn    *string `json:"title_en"`
	SubtitleAr *string `json:"subtitle_ar"`
	SubtitleEn *string `json:"subtitle_en"`
	Image      *string `json:"image"`
	IsActive   *bool   `json:"is_active"`
}

// Validate rejects updates that blank out a required title.
func (r UpdateRequest) Validate() error {
	errs := validation.Errors{}
	if r.TitleAr != nil && strings.TrimSpace(*r.TitleAr) == "" {
		errs["title_ar"] = validation.NewError("catalog.field_blank", "value must not be blank")
	}
	if r.TitleEn != nil && strings.TrimSpace(*r.TitleEn) == "" {
		errs["title_en"] = validation.NewError("catalog.field_blank", "value must not be blank")
	}
	return errs.Filter()
}

// Repository abstracts storage for one catalog entity type. ToggleActive flips
// the is_active flag in a single statement so concurrent toggles never lose a
// flip.
type Repository[T Record] interface {
	Create(ctx context.Context, record T) (T, error)
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	List(ctx context.Context, onlyActive bool) ([]T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID) error
	InvalidateCache(ctx context.Context) error
}

// Manager exposes CRUD and visibility use cases for one catalog entity type.
type Manager[T Record] interface {
	Create(ctx context.Context, req CreateRequest) (T, error)
	List(ctx context.Context, onlyActive bool) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleVisibility(ctx context.Context, id uuid.UUID) (T, error)
}

// ManagerOption configures a manager at construction time.
type ManagerOption[T Record] func(*manager[T])

// WithClock overrides the clock used to stamp records.
func WithClock[T Record](clock func() time.Time) ManagerOption[T] {
	return func(m *manager[T]) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator[T Record](generator func() uuid.UUID) ManagerOption[T] {
	return func(m *manager[T]) {
		if generator != nil {
			m.id = generator
		}
	}
}

// WithLogger attaches a logger to the manager.
func WithLogger[T Record](logger interfaces.Logger) ManagerOption[T] {
	return func(m *manager[T]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

type manager[T Record] struct {
	repo      Repository[T]
	newRecord func() T
	logger    interfaces.Logger
	now       func() time.Time
	id        func() uuid.UUID
}

// NewManager constructs a catalog manager for one entity type.
func NewManager[T Record](repo Repository[T], newRecord func() T, opts ...ManagerOption[T]) Manager[T] {
	m := &manager[T]{
		repo:      repo,
		newRecord: newRecord,
		logger:    logging.NoOp(),
		now:       time.Now,
		id:        uuid.New,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *manager[T]) Create(ctx context.Context, req CreateRequest) (T, error) {
	var zero T
	if err := req.Validate(); err != nil {
		return zero, err
	}

	record := m.newRecord()
	card := record.Card()
	card.ID = m.id()
	card.TitleAr = strings.TrimSpace(req.TitleAr)
	card.TitleEn = strings.TrimSpace(req.TitleEn)
	card.SubtitleAr = strings.TrimSpace(req.SubtitleAr)
	card.SubtitleEn = strings.TrimSpace(req.SubtitleEn)
	card.Image = strings.TrimSpace(req.Image)
	card.IsActive = true
	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}
	card.CreatedAt = m.now()

	created, err := m.repo.Create(ctx, record)
	if err != nil {
		return zero, err
	}
	m.invalidate(ctx)
	return created, nil
}

func (m *manager[T]) List(ctx context.Context, onlyActive bool) ([]T, error) {
	return m.repo.List(ctx, onlyActive)
}

func (m *manager[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if id == uuid.Nil {
		return zero, ErrIDRequired
	}
	return m.repo.GetByID(ctx, id)
}

func (m *manager[T]) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (T, error) {
	var zero T
	if id == uuid.Nil {
		return zero, ErrIDRequired
	}
	if err := req.Validate(); err != nil {
		return zero, err
	}

	record, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}

	card := record.Card()
	if req.TitleAr != nil {
		card.TitleAr = strings.TrimSpace(*req.TitleAr)
	}
	if req.TitleEn != nil {
		card.TitleEn = strings.TrimSpace(*req.TitleEn)
	}
	if req.SubtitleAr != nil {
		card.SubtitleAr = strings.TrimSpace(*req.SubtitleAr)
	}
	if req.SubtitleEn != nil {
		card.SubtitleEn = strings.TrimSpace(*req.SubtitleEn)
	}
	if req.Image != nil {
		card.Image = strings.TrimSpace(*req.Image)
	}
	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}

	updated, err := m.repo.Update(ctx, record)
	if err != nil {
		return zero, err
	}
	m.invalidate(ctx)
	return updated, nil
}

// Delete removes the entity permanently. There is no referential guard: the
// public site simply stops listing the card.
func (m *manager[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return err
	}
	m.invalidate(ctx)
	return nil
}

// ToggleVisibility flips the entity's is_active flag atomically and returns
// the updated record. Two sequential calls restore the original value.
func (m *manager[T]) ToggleVisibility(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if id == uuid.Nil {
		return zero, ErrIDRequired
	}
	if err := m.repo.ToggleActive(ctx, id); err != nil {
		return zero, err
	}
	m.invalidate(ctx)
	return m.repo.GetByID(ctx, id)
}

func (m *manager[T]) invalidate(ctx context.Context) {
	if err := m.repo.InvalidateCache(ctx); err != nil {
		m.logger.Warn("catalog cache invalidation failed", "error", err)
	}
}
