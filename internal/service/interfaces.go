package service

import (
	"context"

	"organization-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// OrganizationServiceInterface defines the interface for organization service
type OrganizationServiceInterface interface {
	Provision(ctx context.Context, fields map[string]any) (*models.Organization, error)
	Get(ctx context.Context, id models.ID) (*models.Organization, error)
	GetCurrent(ctx context.Context) (*models.Organization, error)
	GetFlat(ctx context.Context, id models.ID) (map[string]any, error)
	UpdateSettings(ctx context.Context, id models.ID, fields map[string]any) (*models.Organization, error)
	AttachRelation(ctx context.Context, id models.ID, relation string, req *RelationRequest) (*models.Organization, error)
	DetachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error)
	Reconcile(ctx context.Context, id models.ID, authoritative map[string][]models.ID, repair bool) (*ReconcileReport, error)
	CheckInvariants(ctx context.Context, id models.ID) ([]models.InvariantViolation, error)
	Deprovision(ctx context.Context, id models.ID) error
}
