package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fastygo/chores/repository"
)

const (
	getBlobQuery = "SELECT value FROM blobs WHERE `key` = ?"
	setBlobQuery = "INSERT INTO blobs (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)"
)

type blobRepository struct {
	db *sqlx.DB
}

// NewBlobRepository returns a MySQL-backed implementation of BlobStore.
func NewBlobRepository(db *sqlx.DB) repository.BlobStore {
	return &blobRepository{db: db}
}

func (r *blobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := r.db.GetContext(ctx, &value, getBlobQuery, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *blobRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, setBlobQuery, key, value)
	return err
}

func (r *blobRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
