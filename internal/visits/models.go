package visits

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Visit is one recorded page view. Rows are append-only; the recorder
// deduplicates by (ip, path) within a trailing window before inserting.
type Visit struct {
	bun.BaseModel `bun:"table:visits,alias:v"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	IP          string    `bun:"ip,notnull" json:"ip"`
	CountryCode string    `bun:"country_code" json:"country_code"`
	CountryName string    `bun:"country_name" json:"country_name"`
	Path        string    `bun:"path,notnull" json:"path"`
	UserAgent   string    `bun:"user_agent" json:"user_agent"`
	Referrer    string    `bun:"referrer" json:"referrer"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// CountryStat is one row of the per-country visit breakdown.
type CountryStat struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Stats is the dashboard snapshot assembled by the aggregator.
type Stats struct {
	Today        int           `json:"today"`
	Month        int           `json:"month"`
	Total        int           `json:"total"`
	UniqueToday  int           `json:"unique_today"`
	TodayTrend   float64       `json:"today_trend"`
	MonthTrend   float64       `json:"month_trend"`
	Countries    []CountryStat `json:"countries"`
	GeneratedAt time.Time     `json:"generated_at"`
}
