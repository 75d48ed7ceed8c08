package repository

import (
	"context"

	"organization-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// MutateFunc changes an organization in place inside a store write.
// Returning an error aborts the write.
type MutateFunc func(org *models.Organization) error

// OrganizationRepositoryInterface defines the interface for organization repository operations.
// Every write to one organization is serialized; reads never observe a partial write.
type OrganizationRepositoryInterface interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id models.ID) (*models.Organization, error)
	GetFirst(ctx context.Context) (*models.Organization, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id models.ID) error

	// Mutate loads the organization under its write lock, applies fn and
	// stores the result.
	Mutate(ctx context.Context, id models.ID, fn MutateFunc) (*models.Organization, error)
	AttachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error)
	DetachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error)
	ReplaceRelation(ctx context.Context, id models.ID, relation string, ids models.IDList) (*models.Organization, error)
}
