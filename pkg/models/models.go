package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SubmissionStatus represents a submission's position in its review lifecycle.
// A submission starts out pending and moves to exactly one of the terminal
// states; there is no way back.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusDeclined SubmissionStatus = "declined"
)

// Valid reports whether s is one of the known lifecycle states.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// Terminal reports whether s is a final review decision.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusDeclined
}

// ReleaseType represents the kind of release being submitted
type ReleaseType string

const (
	ReleaseSingle ReleaseType = "single"
	ReleaseEP     ReleaseType = "ep"
	ReleaseAlbum  ReleaseType = "album"
)

func (r ReleaseType) Valid() bool {
	switch r {
	case ReleaseSingle, ReleaseEP, ReleaseAlbum:
		return true
	}
	return false
}

// ArtistProfiles holds optional streaming-platform profile links for a
// featured artist.
type ArtistProfiles struct {
	Spotify    string `json:"spotify,omitempty"`
	AppleMusic string `json:"appleMusic,omitempty"`
	Youtube    string `json:"youtube,omitempty"`
}

// StreamingLinks holds optional links to an already-released version of the
// material.
type StreamingLinks struct {
	Spotify         string `json:"spotify,omitempty"`
	AppleMusicURL   string `json:"appleMusicUrl,omitempty"`
	YoutubeMusicURL string `json:"youtubeMusicUrl,omitempty"`
}

// AudioFile references a previously uploaded audio file by placeholder URL.
// The upload endpoint hands out the URL first; the metadata submission embeds
// it afterwards.
type AudioFile struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	TrackNumber int    `json:"trackNumber"`
}

// Track is one track attachment within a submission. Its position in the
// track list is the display order; TrackNumber is recomputed by the store
// whenever the list changes.
type Track struct {
	ID             TrackID   `json:"id"`
	Title          string    `json:"title"`
	Version        string    `json:"version,omitempty"`
	FeaturedArtist string    `json:"featuredArtist,omitempty"`
	AudioFile      AudioFile `json:"audioFile"`
}

// TrackList is an ordered list of tracks, stored as a single JSONB column in
// the SQL backend.
type TrackList []Track

// Value implements the driver.Valuer interface for database storage
func (t TrackList) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements the sql.Scanner interface for database retrieval
func (t *TrackList) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into TrackList", value)
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, t)
}

// Artwork is the optional cover-art attachment of a submission. At most one
// exists per submission; deleting it leaves the submission itself intact.
type Artwork struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// Submission is one artist's release-intake record: metadata, attachments,
// and review status. Records are owned exclusively by the submission store
// and are never physically deleted.
type Submission struct {
	ID                     int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtistName             string           `gorm:"not null" json:"artistName"`
	Email                  string           `gorm:"not null" json:"email"`
	Genre                  string           `gorm:"not null" json:"genre"`
	Language               string           `gorm:"not null" json:"language"`
	Version                string           `json:"version,omitempty"`
	WriterComposer         string           `gorm:"not null" json:"writerComposer"`
	ReleaseType            ReleaseType      `gorm:"not null" json:"releaseType"`
	ReleaseTitle           string           `gorm:"not null" json:"releaseTitle"`
	ReleaseDate            string           `gorm:"not null" json:"releaseDate"`
	Artwork                *Artwork         `gorm:"type:jsonb;serializer:json" json:"artwork,omitempty"`
	EnableYoutubeContentID bool             `gorm:"not null;default:false" json:"enableYoutubeContentId"`
	PreviouslyReleased     bool             `gorm:"not null;default:false" json:"previouslyReleased"`
	PreviousUPC            string           `json:"previousUpc,omitempty"`
	PreviousISRC           string           `json:"previousIsrc,omitempty"`
	FeaturedArtist         string           `json:"featuredArtist,omitempty"`
	FeaturedArtistType     string           `json:"featuredArtistType,omitempty"` // "new" or "existing"
	FeaturedArtistProfiles *ArtistProfiles  `gorm:"type:jsonb;serializer:json" json:"featuredArtistProfiles,omitempty"`
	StreamingLinks         *StreamingLinks  `gorm:"type:jsonb;serializer:json" json:"streamingLinks,omitempty"`
	Tracks                 TrackList        `gorm:"type:jsonb;not null" json:"tracks"`
	Status                 SubmissionStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt              time.Time        `json:"createdAt"`
}

// Clone returns a deep copy of the submission. Store implementations hand out
// clones so callers can never mutate stored state through a returned pointer.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	out := *s
	if s.Artwork != nil {
		artwork := *s.Artwork
		out.Artwork = &artwork
	}
	if s.FeaturedArtistProfiles != nil {
		profiles := *s.FeaturedArtistProfiles
		out.FeaturedArtistProfiles = &profiles
	}
	if s.StreamingLinks != nil {
		links := *s.StreamingLinks
		out.StreamingLinks = &links
	}
	if s.Tracks != nil {
		out.Tracks = make(TrackList, len(s.Tracks))
		copy(out.Tracks, s.Tracks)
	}
	return &out
}

// User represents an account on the portal. Only team members may read or
// mutate submissions; artist accounts exist so submitters can check back on
// their own releases later.
type User struct {
	ID           UserID    `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsTeamMember bool      `gorm:"not null;default:false" json:"isTeamMember"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BeforeCreate hook to generate ID if not set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}

// FAQ is one entry of the public FAQ list, ordered by Position.
type FAQ struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
