package models

import (
	"encoding/json"

	apperrors "organization-backend/internal/errors"
)

// MergeSettings returns a copy of org carrying settings, the flat view of the
// organization. Fields declared on both sides (name, description) keep the
// root value when it is set and take the settings value otherwise. A field
// declared with different kinds on the two sides is a ConflictError.
func MergeSettings(org *Organization, settings OrganizationSettings) (*Organization, error) {
	if org == nil {
		return nil, apperrors.NewValidationError("", "organization is required")
	}
	if _, err := MergeFieldSets(organizationFields, settingsFields); err != nil {
		return nil, err
	}

	merged := org.Clone()
	name, description := merged.Name, merged.Description
	if name == "" {
		name = settings.Name
	}
	if description == "" {
		description = settings.Description
	}

	merged.OrganizationSettings = settings
	if settings.ThemeID != nil {
		id := *settings.ThemeID
		merged.ThemeID = &id
	}
	merged.Name = name
	merged.Description = description
	merged.syncIdentity()
	return merged, nil
}

// UnmarshalJSON decodes the flat record, turns empty id lists into nil and
// mirrors the identity fields into the settings bundle. A value in that form
// survives a Marshal/Unmarshal round trip unchanged.
func (o *Organization) UnmarshalJSON(data []byte) error {
	type flat Organization
	var decoded flat
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*o = Organization(decoded)
	o.normalize()
	return nil
}
