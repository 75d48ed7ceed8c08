package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"organization-backend/internal/config"
	"organization-backend/internal/database"
	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"
	"organization-backend/internal/logger"
	"organization-backend/internal/repository"
	"organization-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OrganizationFile is the layout of scripts/data/organization.yaml. The
// organization block uses the flat wire names, settings included.
type OrganizationFile struct {
	Organization map[string]any `yaml:"organization"`
}

func main() {
	logger.Setup("info")
	logrus.Info("Loading initial organization from YAML")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if cfg.StoreBackend != config.StoreBackendPostgres {
		logrus.Fatalf("Seeding needs the postgres store, STORE_BACKEND is %q", cfg.StoreBackend)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewOrganizationRepository(db)
	org, created, err := seedOrganization(context.Background(), repo, filepath.Join("scripts", "data", "organization.yaml"))
	if err != nil {
		logrus.Fatalf("Failed to seed organization: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"fqid":    org.FQID(),
		"created": created,
	}).Info("Initial data loaded")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: gormlogger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			logrus.Warnf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

// seedOrganization provisions the organization described in path unless the
// deployment already has one, in which case the existing one is returned.
func seedOrganization(ctx context.Context, repo repository.OrganizationRepositoryInterface, path string) (*models.Organization, bool, error) {
	file, err := loadOrganizationFile(path)
	if err != nil {
		return nil, false, err
	}

	svc := service.NewOrganizationService(repo, validator.New())
	org, err := svc.Provision(ctx, file.Organization)
	if apperrors.IsAlreadyExists(err) {
		existing, err := svc.GetCurrent(ctx)
		if err != nil {
			return nil, false, err
		}
		logrus.WithField("fqid", existing.FQID()).Info("Organization already provisioned, skipping")
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return org, true, nil
}

func loadOrganizationFile(path string) (*OrganizationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file OrganizationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if file.Organization == nil {
		return nil, fmt.Errorf("%s has no organization block", path)
	}
	return &file, nil
}
