package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entry holds the bilingual card fields shared by every catalog entity.
// Catalog entities are flat records, not section-encoded content.
type Entry struct {
	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	TitleAr    string    `bun:"title_ar,notnull" json:"title_ar"`
	TitleEn    string    `bun:"title_en,notnull" json:"title_en"`
	SubtitleAr string    `bun:"subtitle_ar" json:"subtitle_ar"`
	SubtitleEn string    `bun:"subtitle_en" json:"subtitle_en"`
	Image      string    `bun:"image" json:"image"`
	IsActive   bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Card exposes the shared fields for generic service code.
func (e *Entry) Card() *Entry { return e }

// GetID returns the record identifier.
func (e *Entry) GetID() uuid.UUID { return e.ID }

// SetID assigns the record identifier.
func (e *Entry) SetID(id uuid.UUID) { e.ID = id }

// Record is the closed set of catalog entity models.
type Record interface {
	Card() *Entry
	GetID() uuid.UUID
	SetID(uuid.UUID)
	Resource() string
}

// Service is an offered service card shown on the public site.
type Service struct {
	bun.BaseModel `bun:"table:services,alias:svc"`
	Entry
}

func (*Service) Resource() string { return "service" }

// Feature is a product feature card.
type Feature struct {
	bun.BaseModel `bun:"table:features,alias:f"`
	Entry
}

func (*Feature) Resource() string { return "feature" }

// Client is a client or partner logo card.
type Client struct {
	bun.BaseModel `bun:"table:clients,alias:cl"`
	Entry
}

func (*Client) Resource() string { return "client" }
