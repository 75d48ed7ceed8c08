package service

import (
	"context"
	"fmt"
	"sort"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"
	"organization-backend/internal/logger"
)

// RelationDrift is the difference between a stored id list and the ids the
// related collection points back with.
type RelationDrift struct {
	Relation string        `json:"relation"`
	Missing  models.IDList `json:"missing"` // referenced back but not stored
	Stale    models.IDList `json:"stale"`   // stored but not referenced back
}

// ReconcileReport is the outcome of comparing an organization with the
// authoritative back-references of its related collections.
type ReconcileReport struct {
	OrganizationID models.ID                   `json:"organization_id"`
	Drift          []RelationDrift             `json:"drift"`
	Violations     []models.InvariantViolation `json:"violations"`
	Repaired       bool                        `json:"repaired"`
	Organization   *models.Organization        `json:"organization,omitempty"`
}

// Consistent reports whether nothing drifted and no invariant is broken.
func (r *ReconcileReport) Consistent() bool {
	return len(r.Drift) == 0 && len(r.Violations) == 0
}

// Reconcile compares the organization's id lists with authoritative, which
// maps relation names to the ids whose back-reference names this
// organization. Relations absent from authoritative are not compared. With
// repair the drifted lists are rewritten, duplicates dropped and the active
// theme made consistent, all in one write.
func (s *OrganizationService) Reconcile(ctx context.Context, id models.ID, authoritative map[string][]models.ID, repair bool) (*ReconcileReport, error) {
	truth, err := authoritativeLists(authoritative)
	if err != nil {
		return nil, err
	}

	var report *ReconcileReport
	if !repair {
		org, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		report = inspect(org, truth)
		report.Organization = org
		return report, nil
	}

	org, err := s.repo.Mutate(ctx, id, func(current *models.Organization) error {
		report = inspect(current, truth)
		repairOrganization(current, truth)
		return nil
	})
	if err != nil {
		return nil, s.wrap("reconcile", err)
	}
	report.Repaired = !report.Consistent()
	report.Organization = org

	if report.Repaired {
		logger.WithContext(ctx).WithOrganization(org.FQID()).WithFields(map[string]interface{}{
			"drifted_relations": len(report.Drift),
			"violations":        len(report.Violations),
		}).Warn("organization repaired")
	}
	return report, nil
}

func authoritativeLists(authoritative map[string][]models.ID) (map[string]models.IDList, error) {
	truth := make(map[string]models.IDList, len(authoritative))
	for relation, ids := range authoritative {
		if _, ok := models.LookupRelation(relation); !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownRelation, relation)
		}
		list := models.IDList(ids)
		if bad := list.Invalid(); len(bad) > 0 {
			return nil, apperrors.NewValidationError(relation, fmt.Sprintf("%d is not an identifier", bad[0]))
		}
		var unique models.IDList
		for _, id := range list {
			unique = unique.With(id)
		}
		truth[relation] = unique
	}
	return truth, nil
}

func inspect(org *models.Organization, truth map[string]models.IDList) *ReconcileReport {
	report := &ReconcileReport{
		OrganizationID: org.ID,
		Drift:          []RelationDrift{},
		Violations:     org.CheckInvariants(),
	}

	for _, relation := range sortedRelations(truth) {
		want := truth[relation]
		have, _ := org.RelationIDs(relation)
		drift := RelationDrift{Relation: relation}
		for _, id := range want {
			if !have.Contains(id) {
				drift.Missing = append(drift.Missing, id)
			}
		}
		for _, id := range have {
			if !want.Contains(id) && !drift.Stale.Contains(id) {
				drift.Stale = append(drift.Stale, id)
			}
		}
		if len(drift.Missing) == 0 && len(drift.Stale) == 0 {
			continue
		}
		report.Drift = append(report.Drift, drift)

		ref := ""
		if f, ok := models.LookupRelation(relation); ok && f.Ref != nil {
			ref = f.Ref.String()
		}
		report.Violations = append(report.Violations, models.InvariantViolation{
			Invariant: models.InvariantBackReference,
			Field:     relation,
			Message:   fmt.Sprintf("%d missing, %d stale against %s", len(drift.Missing), len(drift.Stale), ref),
		})
	}

	if report.Violations == nil {
		report.Violations = []models.InvariantViolation{}
	}
	return report
}

// repairOrganization rewrites every compared relation: ids still referenced
// back keep their stored order, newly referenced ids follow in authoritative
// order. An active theme that the theme collection does not attribute to the
// organization is unset; otherwise a dangling active theme is added to
// theme_ids.
func repairOrganization(org *models.Organization, truth map[string]models.IDList) {
	for relation, want := range truth {
		have, _ := org.RelationIDs(relation)
		var next models.IDList
		for _, id := range have {
			if want.Contains(id) {
				next = next.With(id)
			}
		}
		for _, id := range want {
			next = next.With(id)
		}
		org.SetRelationIDs(relation, next)
	}

	if themes, ok := truth[models.RelationThemes]; ok && org.ThemeID != nil && !themes.Contains(*org.ThemeID) {
		org.ThemeID = nil
	}
	org.RepairThemeContainment()
	org.DedupeRelations()
}

func sortedRelations(truth map[string]models.IDList) []string {
	names := make([]string, 0, len(truth))
	for name := range truth {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
