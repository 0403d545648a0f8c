package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/fastygo/chores/repository"
)

func TestBlobRepository_PrefixesKeys(t *testing.T) {
	repo := NewBlobRepository(nil, "chores:").(*blobRepository)

	assert.Equal(t, "chores:"+repository.TasksKey, repo.key(repository.TasksKey))
}

func TestBlobRepository_UnreachableServerIsNotMissing(t *testing.T) {
	client := redislib.NewClient(&redislib.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	repo := NewBlobRepository(client, "")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := repo.Get(ctx, repository.TasksKey)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrBlobNotFound)
	assert.Error(t, repo.Ping(ctx))
}
