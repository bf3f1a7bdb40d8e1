package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// Country is the result of an IP geolocation lookup.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// Unknown is the country recorded when a lookup fails or no resolver is
// configured. Lookups degrade; they never fail a request.
func Unknown() Country {
	return Country{Code: "XX", Name: "Unknown"}
}

// Resolver maps a client IP address to a country.
type Resolver interface {
	Resolve(ctx context.Context, ip string) (Country, error)
}

// HTTPResolver queries an external geolocation API that answers
// GET {base}/{ip} with a JSON body carrying country fields.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	logger  interfaces.Logger
}

// HTTPResolverOption configures the resolver.
type HTTPResolverOption func(*HTTPResolver)

// WithHTTPClient overrides the HTTP client used for lookups.
func WithHTTPClient(client *http.Client) HTTPResolverOption {
	return func(r *HTTPResolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithLogger attaches a logger to the resolver.
func WithLogger(logger interfaces.Logger) HTTPResolverOption {
	return func(r *HTTPResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewHTTPResolver creates a resolver against the given API base URL.
func NewHTTPResolver(baseURL string, opts ...HTTPResolverOption) *HTTPResolver {
	r := &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type lookupResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Message     string `json:"message"`
}

// Resolve looks up the country for one IP address.
func (r *HTTPResolver) Resolve(ctx context.Context, ip string) (Country, error) {
	endpoint := r.baseURL + "/" + url.PathEscape(ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Unknown(), fmt.Errorf("geoip: build request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return Unknown(), fmt.Errorf("geoip: lookup failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Unknown(), fmt.Errorf("geoip: lookup returned status %d", res.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Unknown(), fmt.Errorf("geoip: decode response: %w", err)
	}
	if body.Status != "" && body.Status != "success" {
		return Unknown(), fmt.Errorf("geoip: lookup rejected: %s", body.Message)
	}
	if body.CountryCode == "" {
		return Unknown(), nil
	}
	return Country{Code: body.CountryCode, Name: body.Country, City: body.City}, nil
}
