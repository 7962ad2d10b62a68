package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDLifecycle(t *testing.T) {
	id := NewUserID()
	assert.False(t, id.IsZero())

	parsed, err := ParseUserID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUserID("not-a-uuid")
	assert.Error(t, err)

	var zero UserID
	assert.True(t, zero.IsZero())
}

func TestUserIDJSON(t *testing.T) {
	id := NewUserID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var decoded UserID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &decoded))
}

func TestUserIDSQL(t *testing.T) {
	id := NewUserID()

	value, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.String(), value)

	var scanned UserID
	require.NoError(t, scanned.Scan(id.String()))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan([]byte(id.String())))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(7))

	var zero UserID
	value, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestTrackIDLifecycle(t *testing.T) {
	id := NewTrackID()
	assert.False(t, id.IsZero())

	parsed, err := ParseTrackID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded TrackID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}
