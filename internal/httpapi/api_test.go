package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nawras-digital/sitecms/internal/catalog"
	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/internal/media"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/internal/settings"
	"github.com/nawras-digital/sitecms/internal/visits"
)

type stubUploader struct {
	uploads []string
	err     error
}

func (u *stubUploader) Upload(ctx context.Context, filename string, size int64, content io.Reader) (*media.Upload, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.uploads = append(u.uploads, filename)
	return &media.Upload{URL: "https://cdn.example.com/" + filename, Filename: filename, Size: size}, nil
}

type apiFixture struct {
	handler  http.Handler
	uploader *stubUploader
	visits   visits.Service
}

func newTestAPI(t *testing.T) *apiFixture {
	t.Helper()

	sectionService := sections.NewService(
		sections.NewMemoryPageRepository(),
		sections.NewMemorySectionRepository(),
		sections.NewMemoryInputRepository(),
	)
	serviceManager := catalog.NewManager(
		catalog.NewMemoryRepository(func() *catalog.Service { return &catalog.Service{} }),
		func() *catalog.Service { return &catalog.Service{} },
	)
	featureManager := catalog.NewManager(
		catalog.NewMemoryRepository(func() *catalog.Feature { return &catalog.Feature{} }),
		func() *catalog.Feature { return &catalog.Feature{} },
	)
	clientManager := catalog.NewManager(
		catalog.NewMemoryRepository(func() *catalog.Client { return &catalog.Client{} }),
		func() *catalog.Client { return &catalog.Client{} },
	)
	contactService := contacts.NewService(contacts.NewMemoryRepository())
	settingsService := settings.NewService(settings.NewMemoryRepository())
	visitService := visits.NewService(visits.NewMemoryRepository())
	uploader := &stubUploader{}

	api := New(
		WithSectionService(sectionService),
		WithServiceManager(serviceManager),
		WithFeatureManager(featureManager),
		WithClientManager(clientManager),
		WithContactService(contactService),
		WithSettingsService(settingsService),
		WithVisitService(visitService),
		WithUploader(uploader),
	)

	return &apiFixture{
		handler:  api.Handler(),
		uploader: uploader,
		visits:   visitService,
	}
}

func (f *apiFixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "203.0.113.7:52100"
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestPageLifecycleOverHTTP(t *testing.T) {
	f := newTestAPI(t)

	rec := f.do(t, http.MethodPost, "/api/admin/pages", map[string]any{
		"title": "Home",
		"slug":  "Home Page",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create page status = %d, body %s", rec.Code, rec.Body.String())
	}
	page := decodeBody[map[string]any](t, rec)
	if page["slug"] != "home-page" {
		t.Fatalf("slug = %v, want home-page", page["slug"])
	}

	rec = f.do(t, http.MethodPost, "/api/admin/sections", map[string]any{
		"page_id":  page["id"],
		"title":    "Hero",
		"type":     "HERO",
		"position": 1,
		"content": map[string]any{
			"title":     map[string]string{"ar": "مرحبا", "en": "Welcome"},
			"sub_title": map[string]string{"ar": "أهلا", "en": "Hello"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create section status = %d, body %s", rec.Code, rec.Body.String())
	}
	section := decodeBody[map[string]any](t, rec)
	sectionID, _ := section["id"].(string)
	if sectionID == "" {
		t.Fatal("section id missing from response")
	}

	rec = f.do(t, http.MethodPut, "/api/admin/sections/"+sectionID, map[string]any{
		"type": "HERO",
		"content": map[string]any{
			"title":     map[string]string{"ar": "جديد", "en": "Updated"},
			"sub_title": map[string]string{"ar": "أهلا", "en": "Hello"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update section status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/api/pages/home-page", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public page status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Updated") {
		t.Fatalf("public page missing updated content: %s", rec.Body.String())
	}

	rec = f.do(t, http.MethodPut, "/api/admin/sections/"+sectionID+"/visibility", map[string]any{
		"is_visible": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("visibility status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/api/pages/home-page", nil)
	view := decodeBody[map[string]any](t, rec)
	if rendered, ok := view["sections"].([]any); ok && len(rendered) != 0 {
		t.Fatalf("hidden section still rendered publicly: %v", rendered)
	}

	rec = f.do(t, http.MethodGet, "/api/admin/pages/home-page", nil)
	admin := decodeBody[map[string]any](t, rec)
	if all, ok := admin["sections"].([]any); !ok || len(all) != 1 {
		t.Fatalf("admin view should keep the hidden section, got %v", admin["sections"])
	}
}

func TestCreateSectionRejectsUnknownType(t *testing.T) {
	f := newTestAPI(t)

	rec := f.do(t, http.MethodPost, "/api/admin/sections", map[string]any{
		"page_id": "8a0d9f4e-0000-0000-0000-000000000001",
		"type":    "GALLERY",
		"content": map[string]any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDuplicateSlugConflicts(t *testing.T) {
	f := newTestAPI(t)

	first := f.do(t, http.MethodPost, "/api/admin/pages", map[string]any{"title": "A", "slug": "about"})
	if first.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", first.Code)
	}
	second := f.do(t, http.MethodPost, "/api/admin/pages", map[string]any{"title": "B", "slug": "about"})
	if second.Code != http.StatusConflict {
		t.Fatalf("duplicate slug status = %d, want 409", second.Code)
	}
}

func TestEntityCRUDOverHTTP(t *testing.T) {
	f := newTestAPI(t)

	for _, root := range []string{"/api/admin/services", "/api/admin/features", "/api/admin/clients"} {
		rec := f.do(t, http.MethodPost, root, map[string]any{
			"title_ar": "خدمة",
			"title_en": "Service",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s create status = %d, body %s", root, rec.Code, rec.Body.String())
		}
		record := decodeBody[map[string]any](t, rec)
		id, _ := record["id"].(string)

		rec = f.do(t, http.MethodPost, root+"/"+id+"/toggle", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s toggle status = %d", root, rec.Code)
		}
		toggled := decodeBody[map[string]any](t, rec)
		if toggled["is_active"] != false {
			t.Fatalf("%s toggle should deactivate, got %v", root, toggled["is_active"])
		}

		rec = f.do(t, http.MethodGet, root, nil)
		if visible := decodeBody[[]map[string]any](t, rec); len(visible) != 0 {
			t.Fatalf("%s active list should exclude deactivated record, got %d", root, len(visible))
		}
		rec = f.do(t, http.MethodGet, root+"?all=1", nil)
		if all := decodeBody[[]map[string]any](t, rec); len(all) != 1 {
			t.Fatalf("%s full list should include deactivated record, got %d", root, len(all))
		}

		rec = f.do(t, http.MethodDelete, root+"/"+id, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("%s delete status = %d", root, rec.Code)
		}
		rec = f.do(t, http.MethodGet, root+"/"+id, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s get after delete status = %d, want 404", root, rec.Code)
		}
	}
}

func TestEntityUpdateValidation(t *testing.T) {
	f := newTestAPI(t)

	rec := f.do(t, http.MethodPost, "/api/admin/services", map[string]any{
		"title_ar": "خدمة",
		"title_en": "Hosting",
	})
	record := decodeBody[map[string]any](t, rec)
	id, _ := record["id"].(string)

	rec = f.do(t, http.MethodPut, "/api/admin/services/"+id, map[string]any{"title_en": "  "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank title status = %d, want 422", rec.Code)
	}
	payload := decodeBody[errorResponse](t, rec)
	if _, ok := payload.Issues["title_en"]; !ok {
		t.Fatalf("expected title_en issue, got %v", payload.Issues)
	}
}

func TestContactSubmissionAndAdminFlow(t *testing.T) {
	f := newTestAPI(t)

	rec := f.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Rana",
		"email":   "rana@example.com",
		"message": "Please call me back.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[map[string]any](t, rec)
	id, _ := created["id"].(string)

	rec = f.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Rana",
		"email":   "not-an-email",
		"message": "hello",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid email status = %d, want 422", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/api/admin/contacts/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin get status = %d", rec.Code)
	}
	if viewed := decodeBody[map[string]any](t, rec); viewed["is_read"] != true {
		t.Fatal("viewing an inquiry should mark it read")
	}

	rec = f.do(t, http.MethodDelete, "/api/admin/contacts/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = f.do(t, http.MethodGet, "/api/admin/contacts/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newTestAPI(t)

	rec := f.do(t, http.MethodGet, "/api/admin/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("defaults status = %d", rec.Code)
	}
	defaults := decodeBody[map[string]any](t, rec)
	if defaults["site_name"] == "" {
		t.Fatal("defaults should carry a site name")
	}

	rec = f.do(t, http.MethodPut, "/api/admin/settings", map[string]any{
		"site_name": "Nawras",
		"email":     "hello@nawras.example",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[map[string]any](t, rec)
	if updated["site_name"] != "Nawras" {
		t.Fatalf("site_name = %v", updated["site_name"])
	}
}

func TestTrackVisitDeduplicates(t *testing.T) {
	f := newTestAPI(t)

	first := f.do(t, http.MethodPost, "/api/track", map[string]any{"path": "/pricing"})
	if first.Code != http.StatusOK {
		t.Fatalf("track status = %d, body %s", first.Code, first.Body.String())
	}
	if resp := decodeBody[trackResponse](t, first); !resp.Recorded {
		t.Fatal("first hit should be recorded")
	}

	second := f.do(t, http.MethodPost, "/api/track", map[string]any{"path": "/pricing"})
	if resp := decodeBody[trackResponse](t, second); resp.Recorded {
		t.Fatal("repeat hit inside the window should be deduplicated")
	}

	rec := f.do(t, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	stats := decodeBody[visits.Stats](t, rec)
	if stats.Total != 1 {
		t.Fatalf("total visits = %d, want 1", stats.Total)
	}
}

func TestMiddlewareRecordsPublicPageViews(t *testing.T) {
	f := newTestAPI(t)

	f.do(t, http.MethodPost, "/api/admin/pages", map[string]any{"title": "Home", "slug": "home"})
	f.do(t, http.MethodGet, "/api/pages/home", nil)
	f.do(t, http.MethodGet, "/api/admin/pages", nil)
	f.do(t, http.MethodGet, "/assets/site.css", nil)

	stats, err := f.visits.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 1 {
		t.Fatalf("total visits = %d, want only the public page view", stats.Total)
	}
}

func TestUploadProxiesFile(t *testing.T) {
	f := newTestAPI(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "logo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fmt.Fprint(part, "png-bytes")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[media.Upload](t, rec)
	if result.URL != "https://cdn.example.com/logo.png" {
		t.Fatalf("url = %q", result.URL)
	}
	if len(f.uploader.uploads) != 1 {
		t.Fatalf("uploader calls = %d, want 1", len(f.uploader.uploads))
	}
}

func TestUploadWithoutFileFails(t *testing.T) {
	f := newTestAPI(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("note", "no file here")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInvalidIDReturnsBadRequest(t *testing.T) {
	f := newTestAPI(t)

	rec := f.do(t, http.MethodGet, "/api/admin/services/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDashboardAggregates(t *testing.T) {
	f := newTestAPI(t)

	f.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Omar",
		"email":   "omar@example.com",
		"message": "Quote request.",
	})
	f.do(t, http.MethodPost, "/api/track", map[string]any{"path": "/"})

	rec := f.do(t, http.MethodGet, "/api/admin/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body %s", rec.Code, rec.Body.String())
	}
	board := decodeBody[dashboardResponse](t, rec)
	if board.UnreadContacts != 1 {
		t.Fatalf("unread contacts = %d, want 1", board.UnreadContacts)
	}
	if board.Visits == nil || board.Visits.Total != 1 {
		t.Fatalf("visit total missing or wrong: %+v", board.Visits)
	}
}

func TestAdminGuardProtectsBackOffice(t *testing.T) {
	settingsService := settings.NewService(settings.NewMemoryRepository())

	api := New(
		WithSettingsService(settingsService),
		WithAdminGuard(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer admin-token" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
			})
		}),
	)
	handler := api.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated admin request: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated admin request: got status %d, want %d", rec.Code, http.StatusOK)
	}
}
