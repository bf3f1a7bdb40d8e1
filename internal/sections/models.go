package sections

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/nawras-digital/sitecms/internal/domain"
)

// Page is a named, slugged container for ordered sections. Pages are created
// at seed time and rarely mutated afterwards.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Title     string     `bun:"title,notnull" json:"title"`
	Slug      string     `bun:"slug,notnull,unique" json:"slug"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Sections  []*Section `bun:"rel:has-many,join:id=page_id" json:"sections,omitempty"`
}

// Section is one content block on a page. Its fields are stored as flat Input
// rows; Type selects the codec pair used to interpret them. Hidden sections
// stay editable in the admin but are excluded from public rendering.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID        uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	PageID    uuid.UUID          `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Type      domain.SectionType `bun:"type,notnull" json:"type"`
	Title     string             `bun:"title,notnull" json:"title"`
	Position  int                `bun:"position,notnull,default:0" json:"position"`
	IsVisible bool               `bun:"is_visible,notnull,default:true" json:"is_visible"`
	CreatedAt time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Page   *Page    `bun:"rel:belongs-to,join:page_id=id" json:"page,omitempty"`
	Inputs []*Input `bun:"rel:has-many,join:id=section_id" json:"inputs,omitempty"`
}

// Input is a single labeled value belonging to one section. Labels are unique
// within a section and encode field identity; Position is only used for stable
// re-display, decoding relies on labels alone.
type Input struct {
	bun.BaseModel `bun:"table:inputs,alias:i"`

	ID        uuid.UUID        `bun:",pk,type:uuid" json:"id"`
	SectionID uuid.UUID        `bun:"section_id,notnull,type:uuid" json:"section_id"`
	Label     string           `bun:"label,notnull" json:"label"`
	Type      domain.InputType `bun:"type,notnull" json:"type"`
	Value     string           `bun:"value,notnull,default:''" json:"value"`
	Position  int              `bun:"position,notnull,default:0" json:"position"`
	CreatedAt time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Section *Section `bun:"rel:belongs-to,join:section_id=id" json:"section,omitempty"`
}
