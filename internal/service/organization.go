package service

import (
	"context"
	"fmt"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"
	"organization-backend/internal/logger"
	"organization-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

// OrganizationService handles business logic for the deployment's organization
type OrganizationService struct {
	repo      repository.OrganizationRepositoryInterface
	validator *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo repository.OrganizationRepositoryInterface, validator *validator.Validate) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		validator: validator,
	}
}

// RelationRequest names one related entity to attach
type RelationRequest struct {
	ID models.ID `json:"id" validate:"required,gt=0"`
}

// Provision creates the organization from a flat field map. A deployment has
// exactly one organization, so provisioning twice fails.
func (s *OrganizationService) Provision(ctx context.Context, fields map[string]any) (*models.Organization, error) {
	org, err := models.NewOrganization(fields)
	if err != nil {
		return nil, err
	}
	if err := org.CheckWriteLimits(); err != nil {
		return nil, err
	}
	if err := org.CheckThemeContainment(); err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count organizations: %w", err)
	}
	if total > 0 {
		return nil, apperrors.ErrOrganizationExists
	}

	if err := s.repo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	logger.WithContext(ctx).WithOrganization(org.FQID()).Info("organization provisioned")
	return org, nil
}

// Get retrieves an organization by ID
func (s *OrganizationService) Get(ctx context.Context, id models.ID) (*models.Organization, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// GetCurrent retrieves the deployment's organization
func (s *OrganizationService) GetCurrent(ctx context.Context) (*models.Organization, error) {
	org, err := s.repo.GetFirst(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// GetFlat retrieves an organization as its flat record keyed by field name
func (s *OrganizationService) GetFlat(ctx context.Context, id models.ID) (map[string]any, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return org.Flatten(), nil
}

// rootOnlySettings are settings fields whose value lives on the organization
// root and cannot be changed through a settings update.
var rootOnlySettings = []string{"name", "description"}

// UpdateSettings replaces the settings bundle of an organization. The new
// active theme must be one of the organization's themes. Name and description
// are rejected since the root values always win the merge.
func (s *OrganizationService) UpdateSettings(ctx context.Context, id models.ID, fields map[string]any) (*models.Organization, error) {
	for _, name := range rootOnlySettings {
		if _, ok := fields[name]; ok {
			return nil, apperrors.NewValidationError(name, "belongs to the organization root and cannot be set through settings")
		}
	}
	settings, err := models.NewOrganizationSettings(fields)
	if err != nil {
		return nil, err
	}
	if err := settings.CheckWriteLimits(); err != nil {
		return nil, err
	}

	org, err := s.repo.Mutate(ctx, id, func(current *models.Organization) error {
		merged, err := models.MergeSettings(current, *settings)
		if err != nil {
			return err
		}
		if err := merged.CheckThemeContainment(); err != nil {
			return err
		}
		*current = *merged
		return nil
	})
	if err != nil {
		return nil, s.wrap("update settings of", err)
	}

	logger.WithContext(ctx).WithOrganization(org.FQID()).Info("organization settings updated")
	return org, nil
}

// AttachRelation records a related entity in one of the organization's id lists
func (s *OrganizationService) AttachRelation(ctx context.Context, id models.ID, relation string, req *RelationRequest) (*models.Organization, error) {
	if _, ok := models.LookupRelation(relation); !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownRelation, relation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("id", "must be a positive identifier")
	}

	org, err := s.repo.AttachRelation(ctx, id, relation, req.ID)
	if err != nil {
		return nil, s.wrap("attach relation to", err)
	}

	logger.WithContext(ctx).WithOrganization(org.FQID()).WithFields(map[string]interface{}{
		"relation": relation,
		"ref_id":   req.ID,
	}).Debug("relation attached")
	return org, nil
}

// DetachRelation drops a related entity from one of the organization's id lists
func (s *OrganizationService) DetachRelation(ctx context.Context, id models.ID, relation string, refID models.ID) (*models.Organization, error) {
	if _, ok := models.LookupRelation(relation); !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownRelation, relation)
	}

	org, err := s.repo.DetachRelation(ctx, id, relation, refID)
	if err != nil {
		return nil, s.wrap("detach relation from", err)
	}

	logger.WithContext(ctx).WithOrganization(org.FQID()).WithFields(map[string]interface{}{
		"relation": relation,
		"ref_id":   refID,
	}).Debug("relation detached")
	return org, nil
}

// CheckInvariants lists the invariant breaches of a stored organization
func (s *OrganizationService) CheckInvariants(ctx context.Context, id models.ID) ([]models.InvariantViolation, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	violations := org.CheckInvariants()
	if violations == nil {
		violations = []models.InvariantViolation{}
	}
	return violations, nil
}

// Deprovision deletes the organization
func (s *OrganizationService) Deprovision(ctx context.Context, id models.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap("delete", err)
	}
	logger.WithContext(ctx).WithOrganization(models.FQID(models.CollectionOrganization, id)).Info("organization deprovisioned")
	return nil
}

// wrap keeps typed errors as they are and adds context to store failures.
func (s *OrganizationService) wrap(action string, err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return apperrors.ErrOrganizationNotFound
	case apperrors.IsValidation(err), apperrors.IsInvariant(err), apperrors.IsConflict(err):
		return err
	}
	return fmt.Errorf("failed to %s organization: %w", action, err)
}
