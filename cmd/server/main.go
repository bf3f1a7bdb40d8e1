package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sitecms "github.com/nawras-digital/sitecms"
	"github.com/nawras-digital/sitecms/internal/di"
	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/internal/logging/gologger"
	"github.com/nawras-digital/sitecms/internal/seed"
	"github.com/nawras-digital/sitecms/internal/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	addr := fs.String("addr", envOr("SITECMS_ADDR", ":8080"), "HTTP listen address")
	driver := fs.String("driver", envOr("SITECMS_DB_DRIVER", "sqlite"), "Database driver (sqlite or postgres)")
	dsn := fs.String("dsn", envOr("SITECMS_DB_DSN", "file:sitecms.db?_fk=1"), "Database connection string")
	basePath := fs.String("base-path", envOr("SITECMS_BASE_PATH", "/api"), "Public API base path")
	logLevel := fs.String("log-level", envOr("SITECMS_LOG_LEVEL", "info"), "Log level")
	logFormat := fs.String("log-format", envOr("SITECMS_LOG_FORMAT", "console"), "Log format (json, console, pretty)")
	seedDefaults := fs.Bool("seed", true, "Create the stock pages on first run")
	contentDir := fs.String("content-dir", envOr("SITECMS_CONTENT_DIR", ""), "Optional markdown content directory to import at startup")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := sitecms.DefaultConfig()
	cfg.HTTP.Addr = *addr
	cfg.HTTP.BasePath = *basePath
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat
	cfg.Mail = mailConfigFromEnv()
	cfg.Uploads = uploadConfigFromEnv()
	if geo := os.Getenv("SITECMS_GEOIP_URL"); geo != "" {
		cfg.Visits.GeoBaseURL = geo
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger := provider.GetLogger("sitecms.server")

	db, err := storage.Open(storage.Driver(*driver), *dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := storage.CreateSchema(ctx, db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	module, err := sitecms.New(cfg,
		di.WithBunDB(db),
		di.WithLoggerProvider(provider),
	)
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}

	if *seedDefaults || *contentDir != "" {
		seeder := seed.New(module.Sections(), seed.WithLogger(logging.SeedLogger(provider)))
		if *seedDefaults {
			if err := seeder.EnsureDefaults(ctx); err != nil {
				return err
			}
		}
		if *contentDir != "" {
			if _, err := seeder.ImportDir(ctx, os.DirFS(*contentDir), cfg.Seed.Pattern); err != nil {
				return err
			}
		}
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr, "base_path", cfg.HTTP.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

func mailConfigFromEnv() sitecms.MailConfig {
	endpoint := os.Getenv("SITECMS_MAIL_ENDPOINT")
	return sitecms.MailConfig{
		Enabled:          endpoint != "",
		Endpoint:         endpoint,
		APIKey:           os.Getenv("SITECMS_MAIL_API_KEY"),
		From:             os.Getenv("SITECMS_MAIL_FROM"),
		FromName:         os.Getenv("SITECMS_MAIL_FROM_NAME"),
		ContactRecipient: os.Getenv("SITECMS_MAIL_CONTACT_TO"),
	}
}

func uploadConfigFromEnv() sitecms.UploadConfig {
	endpoint := os.Getenv("SITECMS_UPLOAD_ENDPOINT")
	return sitecms.UploadConfig{
		Enabled:  endpoint != "",
		Endpoint: endpoint,
		APIKey:   os.Getenv("SITECMS_UPLOAD_API_KEY"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
