package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/chores/repository"
)

func TestStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := New()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, store.Writes())
}

func TestStore_InjectedFailures(t *testing.T) {
	ctx := context.Background()
	store := New()
	boom := errors.New("boom")

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)

	store.FailWrites(boom)
	assert.ErrorIs(t, store.Set(ctx, "k", nil), boom)
	assert.Zero(t, store.Writes())

	store.Put("k", []byte("v"))
	store.FailReads(boom)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)

	store.FailPings(boom)
	assert.ErrorIs(t, store.Ping(ctx), boom)

	store.FailReads(nil)
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
