package routes

import (
	"fmt"

	"organization-backend/internal/api/handlers"
	"organization-backend/internal/api/middleware"
	"organization-backend/internal/auth"
	"organization-backend/internal/config"
	"organization-backend/internal/repository"
	"organization-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// NewStore opens the organization repository selected by STORE_BACKEND. For
// postgres db must be an initialized connection; it is ignored otherwise. The
// returned health check probes the backing store.
func NewStore(db *gorm.DB, cfg *config.Config) (repository.OrganizationRepositoryInterface, handlers.HealthCheck, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		repo, err := repository.NewMemoryOrganizationRepository()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create memory store: %w", err)
		}
		return repo, nil, nil
	case config.StoreBackendPostgres:
		if db == nil {
			return nil, nil, fmt.Errorf("postgres store requires a database connection")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		return repository.NewOrganizationRepository(db), sqlDB.PingContext, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(repo repository.OrganizationRepositoryInterface, check handlers.HealthCheck, cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()

	// RequestID runs first so the access log carries it.
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	authMiddleware := auth.NewAuthMiddleware(tokens)

	organizationService := service.NewOrganizationService(repo, validator.New())

	healthHandler := handlers.NewHealthHandler(check)
	organizationHandler := handlers.NewOrganizationHandler(organizationService, cfg.RepairOnReconcile)

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		orgs := v1.Group("/organizations")
		{
			readers := orgs.Group("", authMiddleware.RequireAuth())
			readers.GET("/current", organizationHandler.GetCurrentOrganization)
			readers.GET("/:id", organizationHandler.GetOrganization)
			readers.GET("/:id/invariants", organizationHandler.GetInvariants)

			admins := orgs.Group("", authMiddleware.RequireAdmin())
			admins.POST("", organizationHandler.ProvisionOrganization)
			admins.PUT("/:id/settings", organizationHandler.UpdateSettings)
			admins.POST("/:id/relations/:relation", organizationHandler.AttachRelation)
			admins.DELETE("/:id/relations/:relation/:refId", organizationHandler.DetachRelation)
			admins.POST("/:id/reconcile", organizationHandler.Reconcile)
			admins.DELETE("/:id", organizationHandler.DeprovisionOrganization)
		}
	}

	return router, nil
}
