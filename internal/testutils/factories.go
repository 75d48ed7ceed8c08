package testutils

import (
	"organization-backend/internal/database/models"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values and no id, so the
// store assigns one.
func (f *OrganizationFactory) Create() *models.Organization {
	org := &models.Organization{
		Name:        "Test Organization",
		Description: "A test organization for testing purposes",
		OrganizationSettings: models.OrganizationSettings{
			LegalNotice:     "Test legal notice",
			LoginText:       "Welcome",
			URL:             "https://example.org",
			EnableChat:      true,
			LimitOfMeetings: 10,
			LimitOfUsers:    100,
		},
	}
	org.OrganizationSettings.Name = org.Name
	org.OrganizationSettings.Description = org.Description
	return org
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	org.OrganizationSettings.Name = name
	return org
}

// WithThemes sets the organization's themes and makes active the active one
func (f *OrganizationFactory) WithThemes(active models.ID, themes ...models.ID) *models.Organization {
	org := f.Create()
	org.ThemeIDs = models.IDList(themes).Clone()
	org.ThemeID = &active
	return org
}

// WithRelations fills the organization's id lists by relation name
func (f *OrganizationFactory) WithRelations(relations map[string]models.IDList) *models.Organization {
	org := f.Create()
	for name, ids := range relations {
		org.SetRelationIDs(name, ids)
	}
	return org
}

// Fields returns the flat field map of a valid organization, as accepted by
// models.NewOrganization
func (f *OrganizationFactory) Fields() map[string]any {
	return map[string]any{
		"name":              "Test Organization",
		"description":       "A test organization for testing purposes",
		"committee_ids":     []any{1, 2},
		"theme_ids":         []any{7},
		"theme_id":          7,
		"url":               "https://example.org",
		"enable_chat":       true,
		"limit_of_meetings": 10,
	}
}

// FactorySet provides access to all factories
type FactorySet struct {
	Organization *OrganizationFactory
}

// NewFactorySet creates a new set of all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
	}
}
