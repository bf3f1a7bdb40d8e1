package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.7" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","countryCode":"IQ","country":"Iraq","city":"Baghdad"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	country, err := resolver.Resolve(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if country.Code != "IQ" || country.Name != "Iraq" || country.City != "Baghdad" {
		t.Fatalf("unexpected country: %#v", country)
	}
}

func TestResolveFailureDegradesToUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	country, err := resolver.Resolve(context.Background(), "203.0.113.7")
	if err == nil {
		t.Fatal("expected error for upstream failure")
	}
	if country != Unknown() {
		t.Fatalf("failed lookup must yield Unknown, got %#v", country)
	}
}

func TestResolveRejectedLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	country, err := resolver.Resolve(context.Background(), "10.0.0.1")
	if err == nil {
		t.Fatal("expected error for rejected lookup")
	}
	if country != Unknown() {
		t.Fatalf("rejected lookup must yield Unknown, got %#v", country)
	}
}
