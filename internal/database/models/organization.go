package models

import "gorm.io/gorm"

// CollectionOrganization is the collection name used in fully-qualified ids.
const CollectionOrganization = "organization"

// OrganizationSettings is the tenant configuration bundle: branding, policy
// texts, feature toggles and usage limits. It is merged into Organization and
// never stored on its own.
type OrganizationSettings struct {
	// Name and Description mirror the organization root in the merged view;
	// the root columns are the ones persisted.
	Name        string `json:"name" gorm:"-"`
	Description string `json:"description" gorm:"-"`

	LegalNotice   string `json:"legal_notice" gorm:"type:text"`
	PrivacyPolicy string `json:"privacy_policy" gorm:"type:text"`
	LoginText     string `json:"login_text" gorm:"type:text"`
	ThemeID       *ID    `json:"theme_id" gorm:"column:theme_id"` // active theme, one of theme_ids
	URL           string `json:"url" gorm:"column:url;size:2048"`

	ResetPasswordVerboseErrors bool `json:"reset_password_verbose_errors"`
	EnableElectronicVoting     bool `json:"enable_electronic_voting"`
	EnableChat                 bool `json:"enable_chat"`

	// Zero means unlimited.
	LimitOfMeetings int `json:"limit_of_meetings"`
	LimitOfUsers    int `json:"limit_of_users"`
}

// Organization is the tenant root. Its id lists are back-reference caches of
// the related entities' foreign keys; Organization never owns those entities
// and never holds them in memory, only their ids.
type Organization struct {
	ID          ID     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"not null;size:256" validate:"required"`
	Description string `json:"description" gorm:"type:text"`

	CommitteeIDs       IDList `json:"committee_ids" gorm:"column:committee_ids" validate:"ids"`
	ResourceIDs        IDList `json:"resource_ids" gorm:"column:resource_ids" validate:"ids"`
	OrganizationTagIDs IDList `json:"organization_tag_ids" gorm:"column:organization_tag_ids" validate:"ids"`
	ThemeIDs           IDList `json:"theme_ids" gorm:"column:theme_ids" validate:"ids"`
	ActiveMeetingIDs   IDList `json:"active_meeting_ids" gorm:"column:active_meeting_ids" validate:"ids"`
	ArchivedMeetingIDs IDList `json:"archived_meeting_ids" gorm:"column:archived_meeting_ids" validate:"ids"`
	TemplateMeetingIDs IDList `json:"template_meeting_ids" gorm:"column:template_meeting_ids" validate:"ids"`

	OrganizationSettings
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organization_t"
}

// AfterFind mirrors the persisted identity columns into the settings bundle.
func (o *Organization) AfterFind(tx *gorm.DB) error {
	o.normalize()
	return nil
}

// FQID returns the fully-qualified id, e.g. "organization/1".
func (o *Organization) FQID() string {
	return FQID(CollectionOrganization, o.ID)
}

// Settings returns the settings bundle as seen through the merged view.
func (o *Organization) Settings() OrganizationSettings {
	s := o.OrganizationSettings
	s.Name = o.Name
	s.Description = o.Description
	if o.ThemeID != nil {
		id := *o.ThemeID
		s.ThemeID = &id
	}
	return s
}

// RelationIDs returns the id list stored under a relation name.
func (o *Organization) RelationIDs(relation string) (IDList, bool) {
	p := o.relationField(relation)
	if p == nil {
		return nil, false
	}
	return p.Clone(), true
}

// SetRelationIDs replaces the id list stored under a relation name.
func (o *Organization) SetRelationIDs(relation string, ids IDList) bool {
	p := o.relationField(relation)
	if p == nil {
		return false
	}
	*p = ids.Clone()
	return true
}

func (o *Organization) relationField(relation string) *IDList {
	switch relation {
	case RelationCommittees:
		return &o.CommitteeIDs
	case RelationResources:
		return &o.ResourceIDs
	case RelationOrganizationTags:
		return &o.OrganizationTagIDs
	case RelationThemes:
		return &o.ThemeIDs
	case RelationActiveMeetings:
		return &o.ActiveMeetingIDs
	case RelationArchivedMeetings:
		return &o.ArchivedMeetingIDs
	case RelationTemplateMeetings:
		return &o.TemplateMeetingIDs
	}
	return nil
}

// Clone returns a deep copy.
func (o *Organization) Clone() *Organization {
	c := *o
	for _, rel := range Relations() {
		ids, _ := o.RelationIDs(rel.Name)
		c.SetRelationIDs(rel.Name, ids)
	}
	if o.ThemeID != nil {
		id := *o.ThemeID
		c.ThemeID = &id
	}
	return &c
}

// Flatten returns the merged record keyed by wire name. Every root and
// settings field is present; empty id lists are empty slices and an unset
// theme_id is nil.
func (o *Organization) Flatten() map[string]any {
	var themeID any
	if o.ThemeID != nil {
		themeID = *o.ThemeID
	}
	nonNil := func(l IDList) IDList {
		if l == nil {
			return IDList{}
		}
		return l.Clone()
	}
	return map[string]any{
		"id":                            o.ID,
		"name":                          o.Name,
		"description":                   o.Description,
		RelationCommittees:              nonNil(o.CommitteeIDs),
		RelationResources:               nonNil(o.ResourceIDs),
		RelationOrganizationTags:        nonNil(o.OrganizationTagIDs),
		RelationThemes:                  nonNil(o.ThemeIDs),
		RelationActiveMeetings:          nonNil(o.ActiveMeetingIDs),
		RelationArchivedMeetings:        nonNil(o.ArchivedMeetingIDs),
		RelationTemplateMeetings:        nonNil(o.TemplateMeetingIDs),
		"legal_notice":                  o.LegalNotice,
		"privacy_policy":                o.PrivacyPolicy,
		"login_text":                    o.LoginText,
		"theme_id":                      themeID,
		"url":                           o.URL,
		"reset_password_verbose_errors": o.ResetPasswordVerboseErrors,
		"enable_electronic_voting":      o.EnableElectronicVoting,
		"enable_chat":                   o.EnableChat,
		"limit_of_meetings":             o.LimitOfMeetings,
		"limit_of_users":                o.LimitOfUsers,
	}
}

// syncIdentity copies the root name and description into the settings
// bundle so both halves of the merged view agree.
func (o *Organization) syncIdentity() {
	o.OrganizationSettings.Name = o.Name
	o.OrganizationSettings.Description = o.Description
}
