package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/chores/repository"
)

type blobRepository struct {
	client *redislib.Client
	prefix string
}

// NewBlobRepository creates a Redis-backed blob store. Values never expire.
func NewBlobRepository(client *redislib.Client, prefix string) repository.BlobStore {
	return &blobRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *blobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	return result, nil
}

func (r *blobRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *blobRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *blobRepository) key(key string) string {
	return fmt.Sprintf("%s%s", r.prefix, key)
}
