package repository

import (
	"context"
	"errors"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id models.ID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

// GetFirst retrieves the organization with the lowest ID
func (r *OrganizationRepository) GetFirst(ctx context.Context) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).Order("id").First(&org).Error
	if err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

// Count returns the number of stored organizations
func (r *OrganizationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Organization{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update overwrites a stored organization
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Organization
		if err := lockByID(tx, org.ID, &current); err != nil {
			return err
		}
		return tx.Save(org).Error
	})
}

// Delete deletes an organization
func (r *OrganizationRepository) Delete(ctx context.Context, id models.ID) error {
	res := r.db.WithContext(ctx).Delete(&models.Organization{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOrganizationNotFound
	}
	return nil
}

// Mutate applies fn to the organization inside a transaction holding its row lock
func (r *OrganizationRepository) Mutate(ctx context.Context, id models.ID, fn MutateFunc) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, id, &org); err != nil {
			return err
		}
		if err := fn(&org); err != nil {
			return err
		}
		return tx.Save(&org).Error
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// AttachRelation adds refID to one of the organization's id lists
func (r *OrganizationRepository) AttachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error) {
	return r.Mutate(ctx, id, attachFunc(relation, refID))
}

// DetachRelation removes refID from one of the organization's id lists
func (r *OrganizationRepository) DetachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error) {
	return r.Mutate(ctx, id, detachFunc(relation, refID))
}

// ReplaceRelation rewrites one of the organization's id lists
func (r *OrganizationRepository) ReplaceRelation(ctx context.Context, id models.ID, relation string, ids models.IDList) (*models.Organization, error) {
	return r.Mutate(ctx, id, replaceFunc(relation, ids))
}

func lockByID(tx *gorm.DB, id models.ID, dest *models.Organization) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, "id = ?", id).Error
	return translate(err)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrOrganizationNotFound
	}
	return err
}
