package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/chores/internal/config"
)

func TestRunMigrations_DisabledIsNoop(t *testing.T) {
	err := RunMigrations(config.DatabaseConfig{URL: "postgres://unreachable"}, config.MigrationsConfig{Enabled: false}, nil)
	assert.NoError(t, err)
}
