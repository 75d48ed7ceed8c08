package repository

import (
	"context"
	"errors"
	"sync"

	"organization-backend/internal/database/models"
	apperrors "organization-backend/internal/errors"
	"organization-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// OrganizationRepositoryContractSuite exercises behaviour every
// OrganizationRepositoryInterface implementation shares.
type OrganizationRepositoryContractSuite struct {
	suite.Suite
	newRepo   func() OrganizationRepositoryInterface
	repo      OrganizationRepositoryInterface
	factories *testutils.FactorySet
	ctx       context.Context
}

// SetupTest runs before each test
func (suite *OrganizationRepositoryContractSuite) SetupTest() {
	suite.repo = suite.newRepo()
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

func (suite *OrganizationRepositoryContractSuite) create(org *models.Organization) *models.Organization {
	suite.Require().NoError(suite.repo.Create(suite.ctx, org))
	return org
}

func (suite *OrganizationRepositoryContractSuite) TestCreateAssignsID() {
	org := suite.create(suite.factories.Organization.Create())
	suite.True(org.ID.Valid())

	got, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Equal(org.ID, got.ID)
	suite.Equal(org.Name, got.Name)
	suite.Equal(org.Description, got.Description)
	suite.Equal(org.Settings(), got.Settings())
	suite.Equal(got.Name, got.OrganizationSettings.Name)
}

func (suite *OrganizationRepositoryContractSuite) TestCreatePreservesRelations() {
	org := suite.factories.Organization.WithThemes(7, 3, 7)
	org.CommitteeIDs = models.IDList{9, 2, 5}
	suite.create(org)

	got, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Equal(models.IDList{9, 2, 5}, got.CommitteeIDs)
	suite.Equal(models.IDList{3, 7}, got.ThemeIDs)
	suite.Require().NotNil(got.ThemeID)
	suite.Equal(models.ID(7), *got.ThemeID)
	suite.Nil(got.ResourceIDs)
}

func (suite *OrganizationRepositoryContractSuite) TestGetByIDNotFound() {
	org, err := suite.repo.GetByID(suite.ctx, 4242)

	suite.Nil(org)
	suite.True(apperrors.IsNotFound(err))
	suite.ErrorIs(err, apperrors.ErrOrganizationNotFound)
}

func (suite *OrganizationRepositoryContractSuite) TestGetFirstAndCount() {
	total, err := suite.repo.Count(suite.ctx)
	suite.Require().NoError(err)
	suite.Zero(total)

	_, err = suite.repo.GetFirst(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrOrganizationNotFound)

	first := suite.create(suite.factories.Organization.WithName("first"))
	suite.create(suite.factories.Organization.WithName("second"))

	total, err = suite.repo.Count(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)

	got, err := suite.repo.GetFirst(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(first.ID, got.ID)
	suite.Equal("first", got.Name)
}

func (suite *OrganizationRepositoryContractSuite) TestUpdate() {
	org := suite.create(suite.factories.Organization.Create())

	org.LoginText = "Hello again"
	org.ThemeIDs = models.IDList{4}
	theme := models.ID(4)
	org.ThemeID = &theme
	suite.Require().NoError(suite.repo.Update(suite.ctx, org))

	got, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Equal("Hello again", got.LoginText)
	suite.Equal(models.IDList{4}, got.ThemeIDs)
	suite.Equal(&theme, got.ThemeID)
}

func (suite *OrganizationRepositoryContractSuite) TestUpdateNotFound() {
	org := suite.factories.Organization.Create()
	org.ID = 999

	err := suite.repo.Update(suite.ctx, org)
	suite.ErrorIs(err, apperrors.ErrOrganizationNotFound)
}

func (suite *OrganizationRepositoryContractSuite) TestDelete() {
	org := suite.create(suite.factories.Organization.Create())

	suite.Require().NoError(suite.repo.Delete(suite.ctx, org.ID))

	_, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.ErrorIs(err, apperrors.ErrOrganizationNotFound)
	suite.ErrorIs(suite.repo.Delete(suite.ctx, org.ID), apperrors.ErrOrganizationNotFound)
}

func (suite *OrganizationRepositoryContractSuite) TestAttachRelationIsIdempotent() {
	org := suite.create(suite.factories.Organization.Create())

	_, err := suite.repo.AttachRelation(suite.ctx, org.ID, models.RelationResources, 5)
	suite.Require().NoError(err)
	_, err = suite.repo.AttachRelation(suite.ctx, org.ID, models.RelationResources, 3)
	suite.Require().NoError(err)
	got, err := suite.repo.AttachRelation(suite.ctx, org.ID, models.RelationResources, 5)
	suite.Require().NoError(err)

	suite.Equal(models.IDList{5, 3}, got.ResourceIDs)
	stored, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Equal(models.IDList{5, 3}, stored.ResourceIDs)
}

func (suite *OrganizationRepositoryContractSuite) TestAttachRelationRejectsBadInput() {
	org := suite.create(suite.factories.Organization.Create())

	_, err := suite.repo.AttachRelation(suite.ctx, org.ID, "user_ids", 5)
	suite.True(errors.Is(err, apperrors.ErrUnknownRelation))

	_, err = suite.repo.AttachRelation(suite.ctx, org.ID, models.RelationThemes, 0)
	suite.True(apperrors.IsValidation(err))

	_, err = suite.repo.AttachRelation(suite.ctx, 777, models.RelationThemes, 1)
	suite.ErrorIs(err, apperrors.ErrOrganizationNotFound)
}

func (suite *OrganizationRepositoryContractSuite) TestDetachActiveThemeClearsThemeID() {
	org := suite.create(suite.factories.Organization.WithThemes(7, 3, 7))

	got, err := suite.repo.DetachRelation(suite.ctx, org.ID, models.RelationThemes, 7)
	suite.Require().NoError(err)
	suite.Equal(models.IDList{3}, got.ThemeIDs)
	suite.Nil(got.ThemeID)

	stored, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Nil(stored.ThemeID)
	suite.NoError(stored.CheckThemeContainment())
}

func (suite *OrganizationRepositoryContractSuite) TestDetachAbsentIsNoop() {
	org := suite.factories.Organization.Create()
	org.CommitteeIDs = models.IDList{1, 2}
	suite.create(org)

	got, err := suite.repo.DetachRelation(suite.ctx, org.ID, models.RelationCommittees, 9)
	suite.Require().NoError(err)
	suite.Equal(models.IDList{1, 2}, got.CommitteeIDs)
}

func (suite *OrganizationRepositoryContractSuite) TestReplaceRelation() {
	org := suite.create(suite.factories.Organization.Create())

	got, err := suite.repo.ReplaceRelation(suite.ctx, org.ID, models.RelationActiveMeetings, models.IDList{8, 6})
	suite.Require().NoError(err)
	suite.Equal(models.IDList{8, 6}, got.ActiveMeetingIDs)

	_, err = suite.repo.ReplaceRelation(suite.ctx, org.ID, models.RelationActiveMeetings, models.IDList{1, 1})
	suite.True(apperrors.IsValidation(err))

	stored, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Equal(models.IDList{8, 6}, stored.ActiveMeetingIDs, "failed write must not be stored")

	got, err = suite.repo.ReplaceRelation(suite.ctx, org.ID, models.RelationActiveMeetings, nil)
	suite.Require().NoError(err)
	suite.Nil(got.ActiveMeetingIDs)
}

func (suite *OrganizationRepositoryContractSuite) TestMutateErrorAborts() {
	org := suite.create(suite.factories.Organization.Create())
	boom := errors.New("boom")

	_, err := suite.repo.Mutate(suite.ctx, org.ID, func(o *models.Organization) error {
		o.LoginText = "changed"
		return boom
	})
	suite.ErrorIs(err, boom)

	stored, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Equal("Welcome", stored.LoginText)
}

func (suite *OrganizationRepositoryContractSuite) TestReturnedValuesAreCopies() {
	org := suite.create(suite.factories.Organization.Create())

	got, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	got.Name = "mutated"
	got.CommitteeIDs = models.IDList{1}

	again, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Equal("Test Organization", again.Name)
	suite.Nil(again.CommitteeIDs)
}

func (suite *OrganizationRepositoryContractSuite) TestConcurrentAttachKeepsEveryID() {
	org := suite.create(suite.factories.Organization.Create())

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(ref models.ID) {
			defer wg.Done()
			_, err := suite.repo.AttachRelation(suite.ctx, org.ID, models.RelationCommittees, ref)
			errs <- err
		}(models.ID(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		suite.NoError(err)
	}

	stored, err := suite.repo.GetByID(suite.ctx, org.ID)
	suite.Require().NoError(err)
	suite.Len(stored.CommitteeIDs, writers)
	suite.Empty(stored.CommitteeIDs.Duplicates())
}
