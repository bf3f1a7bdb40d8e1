package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SingletonID is the fixed primary key of the one settings row. Pinning the
// identifier removes the race of "does a row exist" existence checks.
var SingletonID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// SocialLink is one external profile shown in the site footer.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Settings is the site-wide configuration singleton.
type Settings struct {
	bun.BaseModel `bun:"table:settings,alias:st"`

	ID          uuid.UUID    `bun:"id,pk,type:uuid" json:"id"`
	SiteName    string       `bun:"site_name,notnull" json:"site_name"`
	Logo        string       `bun:"logo" json:"logo"`
	Email       string       `bun:"email" json:"email"`
	Phone       string       `bun:"phone" json:"phone"`
	AddressAr   string       `bun:"address_ar" json:"address_ar"`
	AddressEn   string       `bun:"address_en" json:"address_en"`
	SocialLinks []SocialLink `bun:"social_links,type:jsonb" json:"social_links"`
	UpdatedAt   time.Time    `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
