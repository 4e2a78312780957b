package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/udisondev/balatrogo/internal/db"
)

// IntegrationSuite is the base suite for PostgreSQL-backed tests.
// The container is started once in TestMain; every suite gets its own
// schema via acquireSchema().
type IntegrationSuite struct {
	suite.Suite
	db  *db.DB
	ctx context.Context
}

// SetupSuite runs migrations and connects once per suite.
func (s *IntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	// DB_ADDR overrides the container (CI).
	dbAddr := os.Getenv("DB_ADDR")
	if dbAddr == "" {
		dbAddr = acquireSchema(s.T())
	}

	if err := db.RunMigrations(s.ctx, dbAddr); err != nil {
		s.T().Fatalf("failed to run migrations: %v", err)
	}

	var err error
	s.db, err = db.New(s.ctx, dbAddr)
	if err != nil {
		s.T().Fatalf("failed to connect to database: %v", err)
	}
}

// SetupTest empties the tables before each test.
func (s *IntegrationSuite) SetupTest() {
	if err := s.cleanupTestData(); err != nil {
		s.T().Fatalf("failed to cleanup test data: %v", err)
	}
}

// TearDownSuite closes the pool; the schema is dropped via t.Cleanup.
func (s *IntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *IntegrationSuite) cleanupTestData() error {
	if _, err := s.db.Pool().Exec(s.ctx, "TRUNCATE TABLE modifier_states"); err != nil {
		return fmt.Errorf("truncating test tables: %w", err)
	}
	return nil
}

func skipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
}
