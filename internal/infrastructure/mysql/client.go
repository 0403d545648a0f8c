package mysql

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/fastygo/chores/internal/config"
)

const createBlobsTable = `
CREATE TABLE IF NOT EXISTS blobs (
  ` + "`key`" + ` VARCHAR(191) NOT NULL PRIMARY KEY,
  value LONGBLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// Connect opens the mysql blob database and creates the blobs table when missing.
func Connect(ctx context.Context, cfg config.MySQLConfig, logger *zap.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(connectCtx, "mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)

	if _, err := db.ExecContext(connectCtx, createBlobsTable); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("connected to mysql", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}
