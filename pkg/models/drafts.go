package models

// SubmissionDraft is the tagged intake payload assembled by the public
// submission form. It is schema-validated at the API boundary before the
// store is ever touched; the store itself persists without re-validating
// business rules.
//
// The validate tags mirror the intake contract: every required metadata field
// must be non-empty, the artwork placeholder URL is required, and at least
// one track with an uploaded audio file must be present.
type SubmissionDraft struct {
	ArtistName             string          `json:"artistName" validate:"required"`
	Email                  string          `json:"email" validate:"required,email"`
	Genre                  string          `json:"genre" validate:"required"`
	Language               string          `json:"language" validate:"required"`
	WriterComposer         string          `json:"writerComposer" validate:"required"`
	ReleaseType            string          `json:"releaseType" validate:"required,oneof=single ep album"`
	ReleaseTitle           string          `json:"releaseTitle" validate:"required"`
	ReleaseDate            string          `json:"releaseDate" validate:"required"`
	ArtworkURL             string          `json:"artworkUrl" validate:"required"`
	ArtworkName            string          `json:"artworkName"`
	Version                string          `json:"version"`
	EnableYoutubeContentID bool            `json:"enableYoutubeContentId"`
	PreviouslyReleased     bool            `json:"previouslyReleased"`
	PreviousUPC            string          `json:"previousUpc"`
	PreviousISRC           string          `json:"previousIsrc"`
	FeaturedArtist         string          `json:"featuredArtist"`
	FeaturedArtistType     string          `json:"featuredArtistType" validate:"omitempty,oneof=new existing"`
	FeaturedArtistProfiles *ArtistProfiles `json:"featuredArtistProfiles"`
	StreamingLinks         *StreamingLinks `json:"streamingLinks"`
	Tracks                 []TrackDraft    `json:"tracks" validate:"required,min=1,dive"`
}

// TrackDraft is one track entry of a submission draft.
type TrackDraft struct {
	Title          string         `json:"title" validate:"required"`
	Version        string         `json:"version"`
	FeaturedArtist string         `json:"featuredArtist"`
	AudioFile      AudioFileDraft `json:"audioFile" validate:"required"`
}

// AudioFileDraft references the placeholder URL returned by the audio upload
// endpoint.
type AudioFileDraft struct {
	URL         string `json:"url" validate:"required"`
	Title       string `json:"title"`
	TrackNumber int    `json:"trackNumber"`
}

// Submission assembles the draft into a fresh Submission record. The store
// assigns the ID, status, timestamps, and track numbering on create.
func (d *SubmissionDraft) Submission() *Submission {
	tracks := make(TrackList, len(d.Tracks))
	for i, td := range d.Tracks {
		title := td.AudioFile.Title
		if title == "" {
			title = td.Title
		}
		tracks[i] = Track{
			Title:          td.Title,
			Version:        td.Version,
			FeaturedArtist: td.FeaturedArtist,
			AudioFile: AudioFile{
				URL:         td.AudioFile.URL,
				Title:       title,
				TrackNumber: i + 1,
			},
		}
	}

	return &Submission{
		ArtistName:             d.ArtistName,
		Email:                  d.Email,
		Genre:                  d.Genre,
		Language:               d.Language,
		Version:                d.Version,
		WriterComposer:         d.WriterComposer,
		ReleaseType:            ReleaseType(d.ReleaseType),
		ReleaseTitle:           d.ReleaseTitle,
		ReleaseDate:            d.ReleaseDate,
		Artwork:                &Artwork{URL: d.ArtworkURL, Name: d.ArtworkName},
		EnableYoutubeContentID: d.EnableYoutubeContentID,
		PreviouslyReleased:     d.PreviouslyReleased,
		PreviousUPC:            d.PreviousUPC,
		PreviousISRC:           d.PreviousISRC,
		FeaturedArtist:         d.FeaturedArtist,
		FeaturedArtistType:     d.FeaturedArtistType,
		FeaturedArtistProfiles: d.FeaturedArtistProfiles,
		StreamingLinks:         d.StreamingLinks,
		Tracks:                 tracks,
	}
}
