// Package models defines the domain types shared by the cadence server,
// stores, and client: submissions with their track and artwork attachments,
// user accounts, and FAQ entries.
//
// # Identifiers
//
// Submissions and FAQ entries use monotonically assigned int64 IDs issued by
// the store; an ID is never reused, and every newly created submission gets
// an ID strictly greater than all previously issued ones. Users and tracks
// use uuid-backed typed IDs ([UserID], [TrackID]) so the different ID spaces
// cannot be mixed up at compile time.
//
// # Submission lifecycle
//
//	pending ──► approved
//	   │
//	   └─────► declined
//
// The state machine is enforced by the store layer: only the two transitions
// above are permitted, re-applying the current terminal state is an
// idempotent no-op, and any other transition out of a terminal state is
// rejected. See [SubmissionStatus].
//
// # Attachments
//
// A submission owns an ordered list of [Track] attachments (at least one at
// creation time) and at most one [Artwork] attachment. Tracks are addressed
// by list index at the API boundary; deleting a track shifts later indices
// down and the store renumbers each track's AudioFile.TrackNumber, so callers
// must not cache indices across mutations. Each track additionally carries a
// stable [TrackID] that never changes.
//
// All attachment URLs are placeholders handed out by the upload endpoints;
// the portal never stores file bytes itself.
//
// # Storage mapping
//
// The structs carry GORM tags for the optional PostgreSQL backend. Nested
// attachment data (tracks, artwork, profile and streaming links) is stored as
// JSONB via [TrackList]'s Valuer/Scanner implementation and the JSON
// serializer, mirroring how the record travels over the HTTP API.
package models
