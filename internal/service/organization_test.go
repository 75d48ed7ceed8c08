package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"
	"organization-backend/internal/mocks"
	"organization-backend/internal/repository"
	"organization-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// OrganizationServiceTestSuite defines the test suite for OrganizationService
type OrganizationServiceTestSuite struct {
	suite.Suite
	ctrl                *gomock.Controller
	mockOrgRepo         *mocks.MockOrganizationRepositoryInterface
	organizationService *service.OrganizationService
	ctx                 context.Context
}

// SetupTest sets up the test suite
func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.organizationService = service.NewOrganizationService(suite.mockOrgRepo, validator.New())
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *OrganizationServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func storedOrganization() *models.Organization {
	org, err := models.NewOrganization(map[string]any{
		"id":            1,
		"name":          "Acme",
		"committee_ids": []any{1, 2},
		"theme_ids":     []any{7},
		"theme_id":      7,
	})
	if err != nil {
		panic(err)
	}
	return org
}

// expectMutate makes Mutate apply its function to a copy of org.
func (suite *OrganizationServiceTestSuite) expectMutate(org *models.Organization) {
	suite.mockOrgRepo.EXPECT().
		Mutate(gomock.Any(), org.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.ID, fn repository.MutateFunc) (*models.Organization, error) {
			c := org.Clone()
			if err := fn(c); err != nil {
				return nil, err
			}
			return c, nil
		}).
		Times(1)
}

// TestProvision tests provisioning the organization
func (suite *OrganizationServiceTestSuite) TestProvision() {
	suite.mockOrgRepo.EXPECT().Count(gomock.Any()).Return(int64(0), nil).Times(1)
	suite.mockOrgRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, org *models.Organization) error {
			org.ID = 1
			return nil
		}).
		Times(1)

	org, err := suite.organizationService.Provision(suite.ctx, map[string]any{
		"name":        "Acme",
		"theme_ids":   []any{7},
		"theme_id":    7,
		"enable_chat": true,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ID(1), org.ID)
	assert.Equal(suite.T(), "Acme", org.Name)
	assert.True(suite.T(), org.EnableChat)
}

// TestProvisionTwice tests that a second organization is refused
func (suite *OrganizationServiceTestSuite) TestProvisionTwice() {
	suite.mockOrgRepo.EXPECT().Count(gomock.Any()).Return(int64(1), nil).Times(1)

	org, err := suite.organizationService.Provision(suite.ctx, map[string]any{"name": "Acme"})

	assert.Nil(suite.T(), org)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOrganizationExists)
}

// TestProvisionInvalidFields tests that construction errors reach the caller untouched
func (suite *OrganizationServiceTestSuite) TestProvisionInvalidFields() {
	_, err := suite.organizationService.Provision(suite.ctx, map[string]any{"description": "no name"})
	assert.True(suite.T(), apperrors.IsValidation(err))

	_, err = suite.organizationService.Provision(suite.ctx, map[string]any{"name": "Acme", "theme_id": 9, "theme_ids": []any{7}})
	assert.True(suite.T(), apperrors.IsInvariant(err))
}

// TestProvisionCountFailure tests store failures are wrapped
func (suite *OrganizationServiceTestSuite) TestProvisionCountFailure() {
	suite.mockOrgRepo.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("connection refused")).Times(1)

	_, err := suite.organizationService.Provision(suite.ctx, map[string]any{"name": "Acme"})

	suite.Require().Error(err)
	assert.Contains(suite.T(), err.Error(), "failed to count organizations")
}

// TestGetNotFound tests retrieving a missing organization
func (suite *OrganizationServiceTestSuite) TestGetNotFound() {
	suite.mockOrgRepo.EXPECT().GetByID(gomock.Any(), models.ID(5)).Return(nil, apperrors.ErrOrganizationNotFound).Times(1)

	org, err := suite.organizationService.Get(suite.ctx, 5)

	assert.Nil(suite.T(), org)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOrganizationNotFound)
}

// TestGetCurrent tests retrieving the deployment's organization
func (suite *OrganizationServiceTestSuite) TestGetCurrent() {
	stored := storedOrganization()
	suite.mockOrgRepo.EXPECT().GetFirst(gomock.Any()).Return(stored, nil).Times(1)

	org, err := suite.organizationService.GetCurrent(suite.ctx)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "organization/1", org.FQID())
}

// TestGetFlat tests the flat record contains every field
func (suite *OrganizationServiceTestSuite) TestGetFlat() {
	suite.mockOrgRepo.EXPECT().GetByID(gomock.Any(), models.ID(1)).Return(storedOrganization(), nil).Times(1)

	flat, err := suite.organizationService.GetFlat(suite.ctx, 1)

	suite.Require().NoError(err)
	assert.Len(suite.T(), flat, len(models.FlatFields()))
	assert.Equal(suite.T(), "Acme", flat["name"])
	assert.Equal(suite.T(), models.ID(7), flat["theme_id"])
	assert.Equal(suite.T(), models.IDList{}, flat[models.RelationResources])
}

// TestUpdateSettings tests replacing the settings bundle
func (suite *OrganizationServiceTestSuite) TestUpdateSettings() {
	suite.expectMutate(storedOrganization())

	org, err := suite.organizationService.UpdateSettings(suite.ctx, 1, map[string]any{
		"login_text":     "Welcome",
		"theme_id":       7,
		"limit_of_users": 50,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Acme", org.Name)
	assert.Equal(suite.T(), "Welcome", org.LoginText)
	assert.Equal(suite.T(), 50, org.LimitOfUsers)
	assert.Equal(suite.T(), models.IDList{1, 2}, org.CommitteeIDs)
}

// TestUpdateSettingsDanglingTheme tests that the active theme must be one of the themes
func (suite *OrganizationServiceTestSuite) TestUpdateSettingsDanglingTheme() {
	suite.expectMutate(storedOrganization())

	org, err := suite.organizationService.UpdateSettings(suite.ctx, 1, map[string]any{"theme_id": 9})

	assert.Nil(suite.T(), org)
	assert.True(suite.T(), apperrors.IsInvariant(err))
	assert.Contains(suite.T(), err.Error(), models.InvariantThemeContainment)
}

// TestUpdateSettingsValidation tests malformed settings never reach the store
func (suite *OrganizationServiceTestSuite) TestUpdateSettingsValidation() {
	_, err := suite.organizationService.UpdateSettings(suite.ctx, 1, map[string]any{"limit_of_users": -1})
	assert.True(suite.T(), apperrors.IsValidation(err))

	_, err = suite.organizationService.UpdateSettings(suite.ctx, 1, map[string]any{"committee_ids": []any{1}})
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestUpdateSettingsRejectsRootIdentity tests that settings cannot carry name or description
func (suite *OrganizationServiceTestSuite) TestUpdateSettingsRejectsRootIdentity() {
	for _, field := range []string{"name", "description"} {
		org, err := suite.organizationService.UpdateSettings(suite.ctx, 1, map[string]any{
			field:        "New",
			"login_text": "Welcome",
		})

		assert.Nil(suite.T(), org)
		var verr *apperrors.ValidationError
		suite.Require().True(errors.As(err, &verr), "expected ValidationError, got %v", err)
		assert.Equal(suite.T(), field, verr.Field)
	}
}

// TestProvisionWriteLimits tests that column sizes and limits are enforced before the store is touched
func (suite *OrganizationServiceTestSuite) TestProvisionWriteLimits() {
	tests := []struct {
		name   string
		fields map[string]any
		field  string
	}{
		{"long name", map[string]any{"name": strings.Repeat("n", 257)}, "name"},
		{"long url", map[string]any{"name": "Acme", "url": "https://" + strings.Repeat("u", 2048)}, "url"},
		{"negative meetings", map[string]any{"name": "Acme", "limit_of_meetings": -1}, "limit_of_meetings"},
		{"negative users", map[string]any{"name": "Acme", "limit_of_users": -5}, "limit_of_users"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			org, err := suite.organizationService.Provision(suite.ctx, tt.fields)

			assert.Nil(suite.T(), org)
			var verr *apperrors.ValidationError
			suite.Require().True(errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(suite.T(), tt.field, verr.Field)
		})
	}
}

// TestProvisionAcceptsSchemelessURL tests that url is free text
func (suite *OrganizationServiceTestSuite) TestProvisionAcceptsSchemelessURL() {
	suite.mockOrgRepo.EXPECT().Count(gomock.Any()).Return(int64(0), nil).Times(1)
	suite.mockOrgRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	org, err := suite.organizationService.Provision(suite.ctx, map[string]any{"name": "Acme", "url": "acme.example"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "acme.example", org.URL)
}

// TestUpdateSettingsNotFound tests updating a missing organization
func (suite *OrganizationServiceTestSuite) TestUpdateSettingsNotFound() {
	suite.mockOrgRepo.EXPECT().Mutate(gomock.Any(), models.ID(3), gomock.Any()).Return(nil, apperrors.ErrOrganizationNotFound).Times(1)

	_, err := suite.organizationService.UpdateSettings(suite.ctx, 3, map[string]any{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrOrganizationNotFound)
}

// TestAttachRelation tests attaching a related entity
func (suite *OrganizationServiceTestSuite) TestAttachRelation() {
	updated := storedOrganization()
	updated.ResourceIDs = models.IDList{4}
	suite.mockOrgRepo.EXPECT().
		AttachRelation(gomock.Any(), models.ID(1), models.RelationResources, models.ID(4)).
		Return(updated, nil).
		Times(1)

	org, err := suite.organizationService.AttachRelation(suite.ctx, 1, models.RelationResources, &service.RelationRequest{ID: 4})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.IDList{4}, org.ResourceIDs)
}

// TestAttachRelationRejectsBadInput tests unknown relations and invalid ids
func (suite *OrganizationServiceTestSuite) TestAttachRelationRejectsBadInput() {
	_, err := suite.organizationService.AttachRelation(suite.ctx, 1, "user_ids", &service.RelationRequest{ID: 4})
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnknownRelation)

	_, err = suite.organizationService.AttachRelation(suite.ctx, 1, models.RelationResources, &service.RelationRequest{ID: 0})
	assert.True(suite.T(), apperrors.IsValidation(err))

	_, err = suite.organizationService.AttachRelation(suite.ctx, 1, models.RelationResources, &service.RelationRequest{ID: -3})
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestDetachRelation tests detaching a related entity
func (suite *OrganizationServiceTestSuite) TestDetachRelation() {
	updated := storedOrganization()
	updated.ThemeIDs = nil
	updated.ThemeID = nil
	suite.mockOrgRepo.EXPECT().
		DetachRelation(gomock.Any(), models.ID(1), models.RelationThemes, models.ID(7)).
		Return(updated, nil).
		Times(1)

	org, err := suite.organizationService.DetachRelation(suite.ctx, 1, models.RelationThemes, 7)

	suite.Require().NoError(err)
	assert.Nil(suite.T(), org.ThemeID)

	_, err = suite.organizationService.DetachRelation(suite.ctx, 1, "nope", 7)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnknownRelation)
}

// TestReconcileReportsDrift tests reconciliation without repair
func (suite *OrganizationServiceTestSuite) TestReconcileReportsDrift() {
	suite.mockOrgRepo.EXPECT().GetByID(gomock.Any(), models.ID(1)).Return(storedOrganization(), nil).Times(1)

	report, err := suite.organizationService.Reconcile(suite.ctx, 1, map[string][]models.ID{
		models.RelationCommittees: {2, 3},
		models.RelationThemes:     {7},
	}, false)

	suite.Require().NoError(err)
	assert.False(suite.T(), report.Repaired)
	assert.False(suite.T(), report.Consistent())
	suite.Require().Len(report.Drift, 1)
	assert.Equal(suite.T(), models.RelationCommittees, report.Drift[0].Relation)
	assert.Equal(suite.T(), models.IDList{3}, report.Drift[0].Missing)
	assert.Equal(suite.T(), models.IDList{1}, report.Drift[0].Stale)
	suite.Require().Len(report.Violations, 1)
	assert.Equal(suite.T(), models.InvariantBackReference, report.Violations[0].Invariant)
	assert.Equal(suite.T(), models.IDList{1, 2}, report.Organization.CommitteeIDs)
}

// TestReconcileRepairs tests reconciliation with repair
func (suite *OrganizationServiceTestSuite) TestReconcileRepairs() {
	stored := storedOrganization()
	suite.expectMutate(stored)

	report, err := suite.organizationService.Reconcile(suite.ctx, 1, map[string][]models.ID{
		models.RelationCommittees: {3, 2, 3},
	}, true)

	suite.Require().NoError(err)
	assert.True(suite.T(), report.Repaired)
	assert.Equal(suite.T(), models.IDList{2, 3}, report.Organization.CommitteeIDs)
	assert.Equal(suite.T(), models.IDList{7}, report.Organization.ThemeIDs)
}

// TestReconcileRepairsDanglingTheme tests that a dangling active theme is added to the themes
func (suite *OrganizationServiceTestSuite) TestReconcileRepairsDanglingTheme() {
	stored := storedOrganization()
	theme := models.ID(9)
	stored.ThemeID = &theme
	suite.expectMutate(stored)

	report, err := suite.organizationService.Reconcile(suite.ctx, 1, nil, true)

	suite.Require().NoError(err)
	assert.True(suite.T(), report.Repaired)
	suite.Require().Len(report.Violations, 1)
	assert.Equal(suite.T(), models.InvariantThemeContainment, report.Violations[0].Invariant)
	assert.Equal(suite.T(), models.IDList{7, 9}, report.Organization.ThemeIDs)
	assert.NoError(suite.T(), report.Organization.CheckThemeContainment())
}

// TestReconcileUnsetsUnattributedTheme tests an active theme the themes do not point back from
func (suite *OrganizationServiceTestSuite) TestReconcileUnsetsUnattributedTheme() {
	suite.expectMutate(storedOrganization())

	report, err := suite.organizationService.Reconcile(suite.ctx, 1, map[string][]models.ID{
		models.RelationThemes: {8},
	}, true)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.IDList{8}, report.Organization.ThemeIDs)
	assert.Nil(suite.T(), report.Organization.ThemeID)
}

// TestReconcileConsistent tests that a consistent organization is left alone
func (suite *OrganizationServiceTestSuite) TestReconcileConsistent() {
	suite.expectMutate(storedOrganization())

	report, err := suite.organizationService.Reconcile(suite.ctx, 1, map[string][]models.ID{
		models.RelationCommittees: {2, 1},
	}, true)

	suite.Require().NoError(err)
	assert.True(suite.T(), report.Consistent())
	assert.False(suite.T(), report.Repaired)
	assert.Equal(suite.T(), models.IDList{1, 2}, report.Organization.CommitteeIDs)
}

// TestReconcileRejectsBadInput tests reconcile input checks
func (suite *OrganizationServiceTestSuite) TestReconcileRejectsBadInput() {
	_, err := suite.organizationService.Reconcile(suite.ctx, 1, map[string][]models.ID{"user_ids": {1}}, true)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnknownRelation)

	_, err = suite.organizationService.Reconcile(suite.ctx, 1, map[string][]models.ID{models.RelationCommittees: {0}}, true)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestCheckInvariants tests invariant reporting
func (suite *OrganizationServiceTestSuite) TestCheckInvariants() {
	stored := storedOrganization()
	stored.CommitteeIDs = models.IDList{1, 1}
	suite.mockOrgRepo.EXPECT().GetByID(gomock.Any(), models.ID(1)).Return(stored, nil).Times(1)

	violations, err := suite.organizationService.CheckInvariants(suite.ctx, 1)

	suite.Require().NoError(err)
	suite.Require().Len(violations, 1)
	assert.Equal(suite.T(), models.InvariantUniqueIDs, violations[0].Invariant)
	assert.Equal(suite.T(), models.RelationCommittees, violations[0].Field)
}

// TestCheckInvariantsClean tests that a clean organization reports an empty list
func (suite *OrganizationServiceTestSuite) TestCheckInvariantsClean() {
	suite.mockOrgRepo.EXPECT().GetByID(gomock.Any(), models.ID(1)).Return(storedOrganization(), nil).Times(1)

	violations, err := suite.organizationService.CheckInvariants(suite.ctx, 1)

	suite.Require().NoError(err)
	assert.NotNil(suite.T(), violations)
	assert.Empty(suite.T(), violations)
}

// TestDeprovision tests deleting the organization
func (suite *OrganizationServiceTestSuite) TestDeprovision() {
	suite.mockOrgRepo.EXPECT().Delete(gomock.Any(), models.ID(1)).Return(nil).Times(1)
	suite.mockOrgRepo.EXPECT().Delete(gomock.Any(), models.ID(2)).Return(apperrors.ErrOrganizationNotFound).Times(1)

	assert.NoError(suite.T(), suite.organizationService.Deprovision(suite.ctx, 1))
	assert.ErrorIs(suite.T(), suite.organizationService.Deprovision(suite.ctx, 2), apperrors.ErrOrganizationNotFound)
}

// TestOrganizationServiceTestSuite runs the test suite
func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
