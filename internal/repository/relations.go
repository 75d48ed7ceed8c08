package repository

import (
	"fmt"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"
)

// attachFunc appends refID to a relation unless it is already there.
func attachFunc(relation string, refID models.ID) MutateFunc {
	return func(org *models.Organization) error {
		if !refID.Valid() {
			return apperrors.NewValidationError(relation, fmt.Sprintf("%d is not an identifier", refID))
		}
		ids, ok := org.RelationIDs(relation)
		if !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownRelation, relation)
		}
		org.SetRelationIDs(relation, ids.With(refID))
		return nil
	}
}

// detachFunc removes refID from a relation. Removing the active theme from
// theme_ids also unsets theme_id.
func detachFunc(relation string, refID models.ID) MutateFunc {
	return func(org *models.Organization) error {
		ids, ok := org.RelationIDs(relation)
		if !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownRelation, relation)
		}
		org.SetRelationIDs(relation, ids.Without(refID))
		if relation == models.RelationThemes && org.ThemeID != nil && *org.ThemeID == refID {
			org.ThemeID = nil
		}
		return nil
	}
}

// replaceFunc overwrites a relation with ids.
func replaceFunc(relation string, ids models.IDList) MutateFunc {
	return func(org *models.Organization) error {
		if _, ok := models.LookupRelation(relation); !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownRelation, relation)
		}
		if bad := ids.Invalid(); len(bad) > 0 {
			return apperrors.NewValidationError(relation, fmt.Sprintf("%d is not an identifier", bad[0]))
		}
		if dups := ids.Duplicates(); len(dups) > 0 {
			return apperrors.NewValidationError(relation, fmt.Sprintf("duplicate identifier %d", dups[0]))
		}
		org.SetRelationIDs(relation, ids)
		return nil
	}
}
