package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/chores/repository"
)

type blobRepository struct {
	pool *pgxpool.Pool
}

// NewBlobRepository returns a Postgres-backed implementation of BlobStore.
// It expects the blobs table created by the bundled migrations.
func NewBlobRepository(pool *pgxpool.Pool) repository.BlobStore {
	return &blobRepository{pool: pool}
}

func (r *blobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM blobs WHERE key = $1`

	var value []byte
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *blobRepository) Set(ctx context.Context, key string, value []byte) error {
	const query = `
	INSERT INTO blobs (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *blobRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
