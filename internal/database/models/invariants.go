package models

import (
	"fmt"

	apperrors "organization-backend/internal/errors"
)

// Invariant names used in violation reports.
const (
	InvariantThemeContainment = "theme_containment"
	InvariantUniqueIDs        = "unique_ids"
	InvariantBackReference    = "back_reference"
)

// InvariantViolation is one broken invariant of an organization.
type InvariantViolation struct {
	Invariant string `json:"invariant"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

// Err converts the violation into an InvariantError.
func (v InvariantViolation) Err() error {
	return apperrors.NewInvariantError(v.Invariant, v.Field+": "+v.Message)
}

// CheckThemeContainment reports an active theme that is not one of the
// organization's themes.
func (o *Organization) CheckThemeContainment() error {
	if o.ThemeID == nil || o.ThemeIDs.Contains(*o.ThemeID) {
		return nil
	}
	return apperrors.NewInvariantError(InvariantThemeContainment,
		fmt.Sprintf("theme_id %d is not in theme_ids %v", *o.ThemeID, []ID(o.ThemeIDs)))
}

// CheckInvariants lists the invariant breaches that can be seen on the
// organization alone: duplicate ids in a relation and theme containment.
// Back-reference consistency needs the related collections and is checked by
// the store.
func (o *Organization) CheckInvariants() []InvariantViolation {
	var out []InvariantViolation
	for _, rel := range Relations() {
		ids, _ := o.RelationIDs(rel.Name)
		for _, dup := range ids.Duplicates() {
			out = append(out, InvariantViolation{
				Invariant: InvariantUniqueIDs,
				Field:     rel.Name,
				Message:   fmt.Sprintf("identifier %d appears more than once", dup),
			})
		}
	}
	if o.ThemeID != nil && !o.ThemeIDs.Contains(*o.ThemeID) {
		out = append(out, InvariantViolation{
			Invariant: InvariantThemeContainment,
			Field:     "theme_id",
			Message:   fmt.Sprintf("%d is not in theme_ids", *o.ThemeID),
		})
	}
	return out
}

// RepairThemeContainment appends a dangling theme_id to theme_ids and
// reports whether anything changed.
func (o *Organization) RepairThemeContainment() bool {
	if o.ThemeID == nil || o.ThemeIDs.Contains(*o.ThemeID) {
		return false
	}
	o.ThemeIDs = o.ThemeIDs.With(*o.ThemeID)
	return true
}

// DedupeRelations drops repeated ids from every relation, keeping the first
// occurrence, and reports whether anything changed.
func (o *Organization) DedupeRelations() bool {
	changed := false
	for _, rel := range Relations() {
		ids, _ := o.RelationIDs(rel.Name)
		if len(ids.Duplicates()) == 0 {
			continue
		}
		var out IDList
		for _, id := range ids {
			out = out.With(id)
		}
		o.SetRelationIDs(rel.Name, out)
		changed = true
	}
	return changed
}
