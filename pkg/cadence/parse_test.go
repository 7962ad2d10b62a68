package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRun(t *testing.T) {
	cmd, config, err := Parse([]string{"run"})
	require.NoError(t, err)
	assert.IsType(t, &RunCommand{}, cmd)
	assert.False(t, config.UsePostgres)
	assert.False(t, config.ReadOnly)
	assert.Equal(t, "8080", config.ServerPort)
	assert.Equal(t, 24*time.Hour, config.SessionTTL)
}

func TestParseFlags(t *testing.T) {
	cmd, config, err := Parse([]string{"-port=9000", "-postgres", "-read-only", "-session-ttl=1h", "run"})
	require.NoError(t, err)
	assert.IsType(t, &RunCommand{}, cmd)
	assert.Equal(t, "9000", config.ServerPort)
	assert.True(t, config.UsePostgres)
	assert.True(t, config.ReadOnly)
	assert.Equal(t, time.Hour, config.SessionTTL)
}

func TestParseMigrate(t *testing.T) {
	cmd, _, err := Parse([]string{"-postgres", "migrate"})
	require.NoError(t, err)
	assert.IsType(t, &MigrateCommand{}, cmd)
}

func TestParseErrors(t *testing.T) {
	_, _, err := Parse([]string{})
	assert.ErrorContains(t, err, "subcommand required")

	_, _, err = Parse([]string{"destroy"})
	assert.ErrorContains(t, err, "unknown command")

	_, _, err = Parse([]string{"-bogus-flag", "run"})
	assert.Error(t, err)
}
