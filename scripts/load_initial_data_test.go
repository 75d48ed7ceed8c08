package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"organization-backend/internal/database/models"
	"organization-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOrganizationFromBundledData(t *testing.T) {
	repo, err := repository.NewMemoryOrganizationRepository()
	require.NoError(t, err)

	org, created, err := seedOrganization(context.Background(), repo, filepath.Join("data", "organization.yaml"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Example Organization", org.Name)
	assert.Equal(t, models.IDList{1}, org.ThemeIDs)
	require.NotNil(t, org.ThemeID)
	assert.Equal(t, models.ID(1), *org.ThemeID)
	assert.Empty(t, org.CheckInvariants())

	again, created, err := seedOrganization(context.Background(), repo, filepath.Join("data", "organization.yaml"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, org.ID, again.ID)
}

func TestSeedOrganizationRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := repository.NewMemoryOrganizationRepository()
	require.NoError(t, err)

	_, _, err = seedOrganization(context.Background(), repo, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("other: 1\n"), 0o600))
	_, _, err = seedOrganization(context.Background(), repo, empty)
	assert.ErrorContains(t, err, "no organization block")

	nameless := filepath.Join(dir, "nameless.yaml")
	require.NoError(t, os.WriteFile(nameless, []byte("organization:\n  login_text: hi\n"), 0o600))
	_, _, err = seedOrganization(context.Background(), repo, nameless)
	assert.ErrorContains(t, err, "name")
}
