package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/chores/internal/config"
)

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{URL: "mysql://nope"}, nil)
	assert.Error(t, err)
}
