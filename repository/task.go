package repository

import (
	"context"
	"errors"
)

// TasksKey is the single key the whole task collection is stored under.
const TasksKey = "chore-app-tasks"

// ErrBlobNotFound is returned by BlobStore.Get when nothing is stored under the key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the load-all/save-all persistence boundary.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
