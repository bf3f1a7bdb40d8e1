package visits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/geoip"
	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// DefaultDedupWindow suppresses repeat views of the same (ip, path) pair.
const DefaultDedupWindow = 5 * time.Minute

const statsCacheKey = "visits:stats"

// ErrIPRequired indicates a record request without a client address.
var ErrIPRequired = errors.New("visits: client ip is required")

// ErrPathRequired indicates a record request without a page path.
var ErrPathRequired = errors.New("visits: page path is required")

// Service exposes the visit recorder and the dashboard aggregator.
type Service interface {
	Record(ctx context.Context, req RecordRequest) (*Visit, bool, error)
	Stats(ctx context.Context) (*Stats, error)
}

// RecordRequest carries one qualifying page view. Country fields may be
// pre-resolved by the caller; when empty, the recorder consults its resolver.
type RecordRequest struct {
	IP          string `json:"ip"`
	Path        string `json:"path"`
	UserAgent   string `json:"user_agent"`
	Referrer    string `json:"referrer"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
}

// Repository abstracts storage and aggregate queries over the visit log.
// FindRecent returns nil when no matching row exists. Zero time bounds on
// CountBetween are unbounded on that side.
type Repository interface {
	Insert(ctx context.Context, record *Visit) (*Visit, error)
	FindRecent(ctx context.Context, ip, path string, since time.Time) (*Visit, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
	DistinctIPsSince(ctx context.Context, since time.Time) (int, error)
	GroupByCountry(ctx context.Context) ([]CountryStat, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used for stamping and window math.
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

// WithDedupWindow overrides the trailing dedup window.
func WithDedupWindow(window time.Duration) ServiceOption {
	return func(s *service) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithResolver attaches an IP geolocation resolver.
func WithResolver(resolver geoip.Resolver) ServiceOption {
	return func(s *service) {
		s.resolver = resolver
	}
}

// WithStatsCache memoizes the dashboard snapshot for the given TTL. Writes
// invalidate the entry so the dashboard never serves a stale snapshot longer
// than the TTL.
func WithStatsCache(cache interfaces.CacheProvider, ttl time.Duration) ServiceOption {
	return func(s *service) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

type service struct {
	repo     Repository
	resolver geoip.Resolver
	cache    interfaces.CacheProvider
	cacheTTL time.Duration
	window   time.Duration
	logger   interfaces.Logger
	now      func() time.Time
	id       func() uuid.UUID
}

// NewService constructs the visit service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		window:   DefaultDedupWindow,
		cacheTTL: time.Minute,
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends one visit unless an identical (ip, path) pair was stored
// within the dedup window. The boolean reports whether a new row was written.
func (s *service) Record(ctx context.Context, req RecordRequest) (*Visit, bool, error) {
	ip := strings.TrimSpace(req.IP)
	if ip == "" {
		return nil, false, ErrIPRequired
	}
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return nil, false, ErrPathRequired
	}

	now := s.now()
	existing, err := s.repo.FindRecent(ctx, ip, path, now.Add(-s.window))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	code, name := req.CountryCode, req.CountryName
	if code == "" && name == "" {
		country := s.resolve(ctx, ip)
		code, name = country.Code, country.Name
	}

	record := &Visit{
		ID:          s.id(),
		IP:          ip,
		CountryCode: code,
		CountryName: name,
		Path:        path,
		UserAgent:   strings.TrimSpace(req.UserAgent),
		Referrer:    strings.TrimSpace(req.Referrer),
		CreatedAt:   now,
	}
	created, err := s.repo.Insert(ctx, record)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
			s.logger.Warn("stats cache invalidation failed", "error", err)
		}
	}
	return created, true, nil
}

// resolve performs the geolocation lookup, degrading to Unknown on any
// failure so recording never fails on the resolver.
func (s *service) resolve(ctx context.Context, ip string) geoip.Country {
	if s.resolver == nil {
		return geoip.Unknown()
	}
	country, err := s.resolver.Resolve(ctx, ip)
	if err != nil {
		s.logger.Debug("geolocation lookup failed", "ip", ip, "error", err)
		return geoip.Unknown()
	}
	return country
}

// Stats assembles the dashboard snapshot, memoized for the configured TTL.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil && cached != nil {
			if snapshot, ok := cached.(*Stats); ok {
				return snapshot, nil
			}
		}
	}

	snapshot, err := s.buildStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, snapshot, s.cacheTTL); err != nil {
			s.logger.Warn("stats cache write failed", "error", err)
		}
	}
	return snapshot, nil
}

func (s *service) buildStats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	dayStart := truncateToDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	today, err := s.repo.CountBetween(ctx, dayStart, time.Time{})
	if err != nil {
		return nil, err
	}
	yesterday, err := s.repo.CountBetween(ctx, dayStart.AddDate(0, 0, -1), dayStart)
	if err != nil {
		return nil, err
	}
	month, err := s.repo.CountBetween(ctx, monthStart, time.Time{})
	if err != nil {
		return nil, err
	}
	prevMonth, err := s.repo.CountBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountBetween(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	uniqueToday, err := s.repo.DistinctIPsSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	countries, err := s.repo.GroupByCountry(ctx)
	if err != nil {
		return nil, err
	}
	for i := range countries {
		countries[i].Share = share(countries[i].Count, total)
	}

	return &Stats{
		Today:       today,
		Month:       month,
		Total:       total,
		UniqueToday: uniqueToday,
		TodayTrend:  Trend(today, yesterday),
		MonthTrend:  Trend(month, prevMonth),
		Countries:   countries,
		GeneratedAt: now,
	}, nil
}

// Trend is the percentage change from previous to current. A zero previous
// period yields 0 rather than an infinite trend.
func Trend(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

func share(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
