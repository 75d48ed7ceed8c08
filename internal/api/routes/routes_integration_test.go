//go:build integration
// +build integration

package routes

import (
	"os"
	"testing"

	"organization-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutils.CleanupSharedContainer()
	os.Exit(code)
}

// TestRoutesOnPostgres runs the router suite against the gorm store
func TestRoutesOnPostgres(t *testing.T) {
	base := testutils.SetupTestSuite(t)
	defer base.TeardownTestSuite()

	suite.Run(t, &RoutesTestSuite{db: base.DB, cfg: base.Config, clean: base.CleanTestDB})
}
