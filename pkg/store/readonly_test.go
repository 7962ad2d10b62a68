package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence/pkg/models"
	"github.com/cadencehq/cadence/pkg/store"
	"github.com/cadencehq/cadence/pkg/store/memory"
)

func TestReadOnlyStore(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()

	readOnly := false
	s := store.NewReadOnlyStore(backing, func() bool { return readOnly })

	sub := &models.Submission{
		ArtistName:   "Nova Reyes",
		ReleaseTitle: "Night Signals",
		Tracks: models.TrackList{
			{Title: "One", AudioFile: models.AudioFile{URL: "u1"}},
		},
	}
	require.NoError(t, s.CreateSubmission(ctx, sub))

	readOnly = true

	// Writes are rejected while the toggle is on.
	assert.ErrorIs(t, s.CreateSubmission(ctx, &models.Submission{}), store.ErrReadOnly)
	_, err := s.SetSubmissionStatus(ctx, sub.ID, models.StatusApproved)
	assert.ErrorIs(t, err, store.ErrReadOnly)
	_, err = s.DeleteArtwork(ctx, sub.ID)
	assert.ErrorIs(t, err, store.ErrReadOnly)
	_, err = s.DeleteTrack(ctx, sub.ID, 0)
	assert.ErrorIs(t, err, store.ErrReadOnly)
	assert.ErrorIs(t, s.CreateUser(ctx, &models.User{Username: "x"}), store.ErrReadOnly)
	assert.ErrorIs(t, s.CreateFAQ(ctx, &models.FAQ{Question: "?", Answer: "!"}), store.ErrReadOnly)
	assert.ErrorIs(t, s.UpdateFAQ(ctx, &models.FAQ{ID: 1}), store.ErrReadOnly)
	assert.ErrorIs(t, s.DeleteFAQ(ctx, 1), store.ErrReadOnly)

	// Reads and schema preparation still work.
	got, err := s.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nova Reyes", got.ArtistName)
	subs, err := s.ListSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.NoError(t, s.Migrate(ctx))

	// Toggling back off restores writes.
	readOnly = false
	_, err = s.SetSubmissionStatus(ctx, sub.ID, models.StatusApproved)
	assert.NoError(t, err)
}

func TestReadOnlyStoreUnwrap(t *testing.T) {
	backing := memory.New()
	s := store.NewReadOnlyStore(backing, func() bool { return true })

	wrapper, ok := s.(*store.ReadOnlyStore)
	require.True(t, ok)
	assert.Equal(t, store.Store(backing), wrapper.Unwrap())
}
