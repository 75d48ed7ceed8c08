package repository

import (
	"context"
	"fmt"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"

	"github.com/hashicorp/go-memdb"
)

const (
	organizationTable = models.CollectionOrganization
	indexID           = "id"
)

func organizationSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			organizationTable: {
				Name: organizationTable,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}
}

// MemoryOrganizationRepository keeps organizations in an in-process memdb.
// Stored records are never handed out; callers always get copies.
type MemoryOrganizationRepository struct {
	db     *memdb.MemDB
	lastID models.ID // guarded by the memdb writer lock
}

// NewMemoryOrganizationRepository creates an empty in-memory repository
func NewMemoryOrganizationRepository() (*MemoryOrganizationRepository, error) {
	db, err := memdb.NewMemDB(organizationSchema())
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}
	return &MemoryOrganizationRepository{db: db}, nil
}

// Create stores a new organization, assigning the next ID when org.ID is zero
func (r *MemoryOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := r.db.Txn(true)
	defer txn.Abort()

	if org.ID == 0 {
		org.ID = r.lastID + 1
	} else if existing, err := txn.First(organizationTable, indexID, org.ID); err != nil {
		return err
	} else if existing != nil {
		return apperrors.NewAlreadyExistsError(models.CollectionOrganization, "with id "+org.ID.String())
	}

	if err := txn.Insert(organizationTable, org.Clone()); err != nil {
		return err
	}
	if org.ID > r.lastID {
		r.lastID = org.ID
	}
	txn.Commit()
	return nil
}

// GetByID retrieves an organization by ID
func (r *MemoryOrganizationRepository) GetByID(ctx context.Context, id models.ID) (*models.Organization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	org, err := getByID(txn, id)
	if err != nil {
		return nil, err
	}
	return org.Clone(), nil
}

// GetFirst retrieves the organization with the lowest ID
func (r *MemoryOrganizationRepository) GetFirst(ctx context.Context) (*models.Organization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(organizationTable, indexID)
	if err != nil {
		return nil, err
	}
	var first *models.Organization
	for raw := it.Next(); raw != nil; raw = it.Next() {
		org := raw.(*models.Organization)
		if first == nil || org.ID < first.ID {
			first = org
		}
	}
	if first == nil {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return first.Clone(), nil
}

// Count returns the number of stored organizations
func (r *MemoryOrganizationRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(organizationTable, indexID)
	if err != nil {
		return 0, err
	}
	var total int64
	for raw := it.Next(); raw != nil; raw = it.Next() {
		total++
	}
	return total, nil
}

// Update overwrites a stored organization
func (r *MemoryOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	_, err := r.Mutate(ctx, org.ID, func(stored *models.Organization) error {
		*stored = *org.Clone()
		return nil
	})
	return err
}

// Delete deletes an organization
func (r *MemoryOrganizationRepository) Delete(ctx context.Context, id models.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := r.db.Txn(true)
	defer txn.Abort()

	org, err := getByID(txn, id)
	if err != nil {
		return err
	}
	if err := txn.Delete(organizationTable, org); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Mutate applies fn to a copy of the organization inside a write transaction
// and stores the copy if fn succeeds.
func (r *MemoryOrganizationRepository) Mutate(ctx context.Context, id models.ID, fn MutateFunc) (*models.Organization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(true)
	defer txn.Abort()

	stored, err := getByID(txn, id)
	if err != nil {
		return nil, err
	}
	org := stored.Clone()
	if err := fn(org); err != nil {
		return nil, err
	}
	org.ID = id

	if err := txn.Insert(organizationTable, org.Clone()); err != nil {
		return nil, err
	}
	txn.Commit()
	return org, nil
}

// AttachRelation adds refID to one of the organization's id lists
func (r *MemoryOrganizationRepository) AttachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error) {
	return r.Mutate(ctx, id, attachFunc(relation, refID))
}

// DetachRelation removes refID from one of the organization's id lists
func (r *MemoryOrganizationRepository) DetachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error) {
	return r.Mutate(ctx, id, detachFunc(relation, refID))
}

// ReplaceRelation rewrites one of the organization's id lists
func (r *MemoryOrganizationRepository) ReplaceRelation(ctx context.Context, id models.ID, relation string, ids models.IDList) (*models.Organization, error) {
	return r.Mutate(ctx, id, replaceFunc(relation, ids))
}

func getByID(txn *memdb.Txn, id models.ID) (*models.Organization, error) {
	raw, err := txn.First(organizationTable, indexID, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return raw.(*models.Organization), nil
}
