package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

var (
	// ErrNoFile indicates an upload request without a file part.
	ErrNoFile = errors.New("media: no file provided")
	// ErrExtensionNotAllowed indicates the file extension is outside the
	// allow-list.
	ErrExtensionNotAllowed = errors.New("media: file extension not allowed")
	// ErrFileTooLarge indicates the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("media: file exceeds size limit")
)

// DefaultMaxSize bounds uploads at 10 MB.
const DefaultMaxSize = 10 << 20

// DefaultAllowedExtensions covers images, documents, and common raw assets.
func DefaultAllowedExtensions() []string {
	return []string{
		".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico",
		".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt",
		".zip", ".mp4", ".webm",
	}
}

// Upload is the stored result of a proxied file upload.
type Upload struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Uploader proxies files to an external media host and returns public URLs.
type Uploader interface {
	Upload(ctx context.Context, filename string, size int64, content io.Reader) (*Upload, error)
}

// Config holds the settings for the media host client.
type Config struct {
	Endpoint          string
	APIKey            string
	MaxSize           int64
	AllowedExtensions []string
}

// HostUploader implements Uploader against an HTTP media host that accepts a
// multipart POST and answers with the stored file's public URL.
type HostUploader struct {
	cfg     Config
	allowed map[string]bool
	client  *http.Client
	logger  interfaces.Logger
}

// HostUploaderOption configures the uploader.
type HostUploaderOption func(*HostUploader)

// WithHTTPClient overrides the HTTP client used for uploads.
func WithHTTPClient(client *http.Client) HostUploaderOption {
	return func(u *HostUploader) {
		if client != nil {
			u.client = client
		}
	}
}

// WithLogger attaches a logger to the uploader.
func WithLogger(logger interfaces.Logger) HostUploaderOption {
	return func(u *HostUploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewHostUploader creates an uploader against the configured media host.
func NewHostUploader(cfg Config, opts ...HostUploaderOption) *HostUploader {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = DefaultAllowedExtensions()
	}

	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = true
	}

	u := &HostUploader{
		cfg:     cfg,
		allowed: allowed,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type hostResponse struct {
	URL string `json:"url"`
}

// Upload validates the file and proxies it to the media host.
func (u *HostUploader) Upload(ctx context.Context, filename string, size int64, content io.Reader) (*Upload, error) {
	if content == nil || strings.TrimSpace(filename) == "" {
		return nil, ErrNoFile
	}
	if size > u.cfg.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !u.allowed[ext] {
		return nil, fmt.Errorf("%w: %s", ErrExtensionNotAllowed, ext)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("media: build multipart body: %w", err)
	}
	written, err := io.Copy(part, io.LimitReader(content, u.cfg.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("media: read file: %w", err)
	}
	if written > u.cfg.MaxSize {
		return nil, ErrFileTooLarge
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("media: finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.Endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("media: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if u.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.cfg.APIKey)
	}

	res, err := u.client.Do(req)
	if err != nil {
		u.logger.Error("media host upload failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("media: upload failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		u.logger.Error("media host rejected upload", "filename", filename, "status", res.StatusCode)
		return nil, fmt.Errorf("media: media host returned status %d", res.StatusCode)
	}

	var parsed hostResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("media: decode response: %w", err)
	}
	if parsed.URL == "" {
		return nil, fmt.Errorf("media: media host returned no url")
	}

	u.logger.Info("file uploaded", "filename", filename, "size", written)
	return &Upload{URL: parsed.URL, Filename: filepath.Base(filename), Size: written}, nil
}
