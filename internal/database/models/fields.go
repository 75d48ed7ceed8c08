package models

import (
	"fmt"

	apperrors "organization-backend/internal/errors"
)

// FieldKind is the value type of a field on the wire.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindBoolean FieldKind = "boolean"
	KindInteger FieldKind = "integer"
	KindID      FieldKind = "id"
	KindIDs     FieldKind = "ids"
)

// BackReference names the foreign key on the related collection that points
// back at the organization.
type BackReference struct {
	Collection string
	Field      string
}

func (r BackReference) String() string {
	return r.Collection + "/" + r.Field
}

// FieldDescriptor describes one field of the wire contract.
type FieldDescriptor struct {
	Name     string
	Kind     FieldKind
	Required bool
	Ref      *BackReference
}

// Relation names, equal to the wire names of the id lists.
const (
	RelationCommittees       = "committee_ids"
	RelationResources        = "resource_ids"
	RelationOrganizationTags = "organization_tag_ids"
	RelationThemes           = "theme_ids"
	RelationActiveMeetings   = "active_meeting_ids"
	RelationArchivedMeetings = "archived_meeting_ids"
	RelationTemplateMeetings = "template_meeting_ids"
)

var organizationFields = []FieldDescriptor{
	{Name: "id", Kind: KindID},
	{Name: "name", Kind: KindText, Required: true},
	{Name: "description", Kind: KindText},
	{Name: RelationCommittees, Kind: KindIDs, Ref: &BackReference{"committee", "organization_id"}},
	{Name: RelationResources, Kind: KindIDs, Ref: &BackReference{"resource", "organization_id"}},
	{Name: RelationOrganizationTags, Kind: KindIDs, Ref: &BackReference{"organization_tag", "organization_id"}},
	{Name: RelationThemes, Kind: KindIDs, Ref: &BackReference{"theme", "organization_id"}},
	{Name: RelationActiveMeetings, Kind: KindIDs, Ref: &BackReference{"meeting", "is_active_in_organization_id"}},
	{Name: RelationArchivedMeetings, Kind: KindIDs, Ref: &BackReference{"meeting", "is_archived_in_organization_id"}},
	{Name: RelationTemplateMeetings, Kind: KindIDs, Ref: &BackReference{"meeting", "template_for_organization_id"}},
}

var settingsFields = []FieldDescriptor{
	{Name: "name", Kind: KindText},
	{Name: "description", Kind: KindText},
	{Name: "legal_notice", Kind: KindText},
	{Name: "privacy_policy", Kind: KindText},
	{Name: "login_text", Kind: KindText},
	{Name: "theme_id", Kind: KindID, Ref: &BackReference{"theme", "theme_for_organization_id"}},
	{Name: "url", Kind: KindText},
	{Name: "reset_password_verbose_errors", Kind: KindBoolean},
	{Name: "enable_electronic_voting", Kind: KindBoolean},
	{Name: "enable_chat", Kind: KindBoolean},
	{Name: "limit_of_meetings", Kind: KindInteger},
	{Name: "limit_of_users", Kind: KindInteger},
}

// flatFields is the merged field set; built once, the declared sets never collide.
var flatFields = mustMergeFieldSets(organizationFields, settingsFields)

// OrganizationFields returns the fields declared on the aggregate root.
func OrganizationFields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), organizationFields...)
}

// SettingsFields returns the fields of the settings bundle.
func SettingsFields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), settingsFields...)
}

// FlatFields returns the fields of the merged view in wire order: root fields
// first, then the settings fields the root does not already declare.
func FlatFields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), flatFields...)
}

// Relations returns the id-list fields of the root.
func Relations() []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range organizationFields {
		if f.Kind == KindIDs {
			out = append(out, f)
		}
	}
	return out
}

// LookupRelation finds an id-list field by wire name.
func LookupRelation(name string) (FieldDescriptor, bool) {
	for _, f := range organizationFields {
		if f.Kind == KindIDs && f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// LookupField finds a field of the merged view by wire name.
func LookupField(name string) (FieldDescriptor, bool) {
	for _, f := range flatFields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// MergeFieldSets combines the root and settings field sets into the flat view.
// A name declared on both sides must have the same kind there; otherwise the
// two meanings cannot share one flat record and a ConflictError is returned.
// Required-ness is the union of both sides.
func MergeFieldSets(root, settings []FieldDescriptor) ([]FieldDescriptor, error) {
	out := append([]FieldDescriptor(nil), root...)
	index := make(map[string]int, len(out))
	for i, f := range out {
		index[f.Name] = i
	}
	for _, f := range settings {
		i, ok := index[f.Name]
		if !ok {
			index[f.Name] = len(out)
			out = append(out, f)
			continue
		}
		if out[i].Kind != f.Kind {
			return nil, apperrors.NewConflictError(f.Name,
				fmt.Sprintf("declared as %s on the organization and %s in the settings", out[i].Kind, f.Kind))
		}
		out[i].Required = out[i].Required || f.Required
	}
	return out, nil
}

func mustMergeFieldSets(root, settings []FieldDescriptor) []FieldDescriptor {
	out, err := MergeFieldSets(root, settings)
	if err != nil {
		panic(err)
	}
	return out
}
