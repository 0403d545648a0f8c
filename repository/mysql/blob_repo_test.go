package mysql

import (
	"context"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"github.com/fastygo/chores/repository"
)

// BlobRepositorySuite runs against a real server named by MYSQL_TEST_DSN.
type BlobRepositorySuite struct {
	suite.Suite
	db   *sqlx.DB
	repo repository.BlobStore
}

func TestBlobRepositorySuite(t *testing.T) {
	suite.Run(t, new(BlobRepositorySuite))
}

func (s *BlobRepositorySuite) SetupSuite() {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		s.T().Skip("MYSQL_TEST_DSN not set")
	}
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		s.T().Skipf("skipping mysql suite: %v", err)
	}
	s.db = db
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS blobs (`key` VARCHAR(191) NOT NULL PRIMARY KEY, value LONGBLOB NOT NULL)")
	s.Require().NoError(err)
	s.repo = NewBlobRepository(db)
}

func (s *BlobRepositorySuite) TearDownSuite() {
	if s.db != nil {
		s.Require().NoError(s.db.Close())
	}
}

func (s *BlobRepositorySuite) SetupTest() {
	_, err := s.db.Exec("DELETE FROM blobs")
	s.Require().NoError(err)
}

func (s *BlobRepositorySuite) TestMissingKey() {
	_, err := s.repo.Get(context.Background(), repository.TasksKey)
	s.ErrorIs(err, repository.ErrBlobNotFound)
}

func (s *BlobRepositorySuite) TestSetOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Set(ctx, repository.TasksKey, []byte(`[]`)))
	s.Require().NoError(s.repo.Set(ctx, repository.TasksKey, []byte(`[{"id":"1"}]`)))

	got, err := s.repo.Get(ctx, repository.TasksKey)
	s.Require().NoError(err)
	s.Equal(`[{"id":"1"}]`, string(got))
	s.NoError(s.repo.Ping(ctx))
}
