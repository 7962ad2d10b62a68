package cadence

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencehq/cadence/pkg/models"
)

func validDraft() *models.SubmissionDraft {
	return &models.SubmissionDraft{
		ArtistName:     "Nova Reyes",
		Email:          "nova@example.com",
		Genre:          "electronic",
		Language:       "English",
		WriterComposer: "N. Reyes",
		ReleaseType:    "single",
		ReleaseTitle:   "Night Signals",
		ReleaseDate:    "2026-10-01",
		ArtworkURL:     "https://storage.example.com/artwork/a.jpg",
		Tracks: []models.TrackDraft{
			{Title: "Night Signals", AudioFile: models.AudioFileDraft{URL: "https://storage.example.com/audio/a.wav"}},
		},
	}
}

func fieldNames(fields []FieldError) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	return names
}

func TestValidateDraft(t *testing.T) {
	app, err := New(&Config{LogOutput: io.Discard})
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.validateDraft(validDraft()))

	t.Run("missing required fields", func(t *testing.T) {
		draft := validDraft()
		draft.ArtistName = ""
		draft.Email = ""
		fields := app.validateDraft(draft)
		assert.Contains(t, fieldNames(fields), "ArtistName")
		assert.Contains(t, fieldNames(fields), "Email")
	})

	t.Run("bad email", func(t *testing.T) {
		draft := validDraft()
		draft.Email = "not-an-email"
		fields := app.validateDraft(draft)
		require.Len(t, fields, 1)
		assert.Equal(t, "Email", fields[0].Field)
		assert.Equal(t, "must be a valid email address", fields[0].Message)
	})

	t.Run("bad release type", func(t *testing.T) {
		draft := validDraft()
		draft.ReleaseType = "mixtape"
		fields := app.validateDraft(draft)
		require.Len(t, fields, 1)
		assert.Equal(t, "ReleaseType", fields[0].Field)
		assert.Contains(t, fields[0].Message, "single")
	})

	t.Run("missing artwork", func(t *testing.T) {
		draft := validDraft()
		draft.ArtworkURL = ""
		fields := app.validateDraft(draft)
		require.Len(t, fields, 1)
		assert.Equal(t, "ArtworkURL", fields[0].Field)
	})

	t.Run("no tracks", func(t *testing.T) {
		draft := validDraft()
		draft.Tracks = nil
		fields := app.validateDraft(draft)
		require.Len(t, fields, 1)
		assert.Equal(t, "Tracks", fields[0].Field)
	})

	t.Run("track without audio file url", func(t *testing.T) {
		draft := validDraft()
		draft.Tracks[0].AudioFile.URL = ""
		fields := app.validateDraft(draft)
		require.Len(t, fields, 1)
		assert.Equal(t, "Tracks[0].AudioFile.URL", fields[0].Field)
	})
}
