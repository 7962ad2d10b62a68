package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence/pkg/models"
	"github.com/cadencehq/cadence/pkg/store"
)

func newSubmission(artist, title string) *models.Submission {
	return &models.Submission{
		ArtistName:   artist,
		Email:        "artist@example.com",
		Genre:        "electronic",
		Language:     "English",
		ReleaseType:  models.ReleaseSingle,
		ReleaseTitle: title,
		ReleaseDate:  "2026-10-01",
		Artwork:      &models.Artwork{URL: "https://storage.example.com/artwork/a.jpg"},
		Tracks: models.TrackList{
			{Title: "One", AudioFile: models.AudioFile{URL: "u1"}},
			{Title: "Two", AudioFile: models.AudioFile{URL: "u2"}},
			{Title: "Three", AudioFile: models.AudioFile{URL: "u3"}},
		},
	}
}

func TestCreateSubmission(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := newSubmission("Nova Reyes", "Night Signals")
	require.NoError(t, s.CreateSubmission(ctx, first))
	second := newSubmission("Iris Vale", "Daybreak")
	require.NoError(t, s.CreateSubmission(ctx, second))

	// Monotonic IDs from 1, pending status, stamped creation time.
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.False(t, first.CreatedAt.IsZero())

	// Tracks get stable IDs and 1-based numbering.
	for i, track := range first.Tracks {
		assert.False(t, track.ID.IsZero())
		assert.Equal(t, i+1, track.AudioFile.TrackNumber)
	}

	// The stored record is a copy; mutating the caller's struct changes nothing.
	first.ArtistName = "changed"
	got, err := s.GetSubmission(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Nova Reyes", got.ArtistName)
}

func TestGetSubmissionNotFound(t *testing.T) {
	s := New()
	_, err := s.GetSubmission(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListSubmissions(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateSubmission(ctx, newSubmission("Artist", fmt.Sprintf("Release %d", i))))
	}

	subs, err := s.ListSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 3)

	// Returned records are copies.
	subs[0].Status = models.StatusApproved
	got, err := s.GetSubmission(ctx, subs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestSetSubmissionStatus(t *testing.T) {
	ctx := context.Background()
	s := New()
	sub := newSubmission("Nova Reyes", "Night Signals")
	require.NoError(t, s.CreateSubmission(ctx, sub))

	// Only terminal statuses are valid decisions.
	_, err := s.SetSubmissionStatus(ctx, sub.ID, models.StatusPending)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
	_, err = s.SetSubmissionStatus(ctx, sub.ID, models.SubmissionStatus("archived"))
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	_, err = s.SetSubmissionStatus(ctx, 99, models.StatusApproved)
	assert.ErrorIs(t, err, store.ErrNotFound)

	updated, err := s.SetSubmissionStatus(ctx, sub.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)

	// Re-applying the same decision is a no-op success.
	again, err := s.SetSubmissionStatus(ctx, sub.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, again.Status)

	// Leaving a terminal state is never allowed.
	_, err = s.SetSubmissionStatus(ctx, sub.ID, models.StatusDeclined)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	got, err := s.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestDeleteArtwork(t *testing.T) {
	ctx := context.Background()
	s := New()
	sub := newSubmission("Nova Reyes", "Night Signals")
	require.NoError(t, s.CreateSubmission(ctx, sub))

	updated, err := s.DeleteArtwork(ctx, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Artwork)

	// Idempotent: deleting absent artwork still succeeds.
	updated, err = s.DeleteArtwork(ctx, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Artwork)

	_, err = s.DeleteArtwork(ctx, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteTrack(t *testing.T) {
	ctx := context.Background()
	s := New()
	sub := newSubmission("Nova Reyes", "Night Signals")
	require.NoError(t, s.CreateSubmission(ctx, sub))
	thirdID := sub.Tracks[2].ID

	updated, err := s.DeleteTrack(ctx, sub.ID, 1)
	require.NoError(t, err)
	require.Len(t, updated.Tracks, 2)

	// Later tracks shift down and are renumbered; identities survive.
	assert.Equal(t, "One", updated.Tracks[0].Title)
	assert.Equal(t, "Three", updated.Tracks[1].Title)
	assert.Equal(t, thirdID, updated.Tracks[1].ID)
	assert.Equal(t, 1, updated.Tracks[0].AudioFile.TrackNumber)
	assert.Equal(t, 2, updated.Tracks[1].AudioFile.TrackNumber)

	// Out-of-range indices leave the record untouched.
	_, err = s.DeleteTrack(ctx, sub.ID, 2)
	assert.ErrorIs(t, err, store.ErrOutOfRange)
	_, err = s.DeleteTrack(ctx, sub.ID, -1)
	assert.ErrorIs(t, err, store.ErrOutOfRange)

	got, err := s.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tracks, 2)

	_, err = s.DeleteTrack(ctx, 99, 0)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := New()

	user := &models.User{Username: "reviewer", PasswordHash: "hash", IsTeamMember: true}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.False(t, user.ID.IsZero())
	assert.False(t, user.CreatedAt.IsZero())

	dup := &models.User{Username: "reviewer", PasswordHash: "other"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), store.ErrConflict)

	byID, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "reviewer", byID.Username)

	byName, err := s.GetUserByUsername(ctx, "reviewer")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = s.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFAQs(t *testing.T) {
	ctx := context.Background()
	s := New()

	second := &models.FAQ{Question: "How long does review take?", Answer: "A few days.", Position: 2}
	first := &models.FAQ{Question: "What formats do you accept?", Answer: "WAV or FLAC.", Position: 1}
	require.NoError(t, s.CreateFAQ(ctx, second))
	require.NoError(t, s.CreateFAQ(ctx, first))

	faqs, err := s.ListFAQs(ctx)
	require.NoError(t, err)
	require.Len(t, faqs, 2)

	// Ordered by position, not insertion.
	assert.Equal(t, "What formats do you accept?", faqs[0].Question)
	assert.Equal(t, "How long does review take?", faqs[1].Question)

	first.Answer = "WAV, FLAC, or AIFF."
	require.NoError(t, s.UpdateFAQ(ctx, first))
	faqs, err = s.ListFAQs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "WAV, FLAC, or AIFF.", faqs[0].Answer)

	assert.ErrorIs(t, s.UpdateFAQ(ctx, &models.FAQ{ID: 99, Question: "?", Answer: "!"}), store.ErrNotFound)

	require.NoError(t, s.DeleteFAQ(ctx, first.ID))
	assert.ErrorIs(t, s.DeleteFAQ(ctx, first.ID), store.ErrNotFound)

	faqs, err = s.ListFAQs(ctx)
	require.NoError(t, err)
	assert.Len(t, faqs, 1)
}
