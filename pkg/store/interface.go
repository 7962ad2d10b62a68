// Package store provides the persistence layer abstraction for the cadence
// portal.
//
// The [Store] interface is the single source of truth for submissions, user
// accounts, and FAQ entries. Two implementations exist:
//
//   - [github.com/cadencehq/cadence/pkg/store/memory.MemoryStore]: the
//     canonical in-memory backend. All state lives in maps guarded by a
//     mutex; process restart loses everything, which is an explicit non-goal
//     of the portal.
//   - [github.com/cadencehq/cadence/pkg/store/postgres.PostgresStore]: an
//     optional GORM-backed PostgreSQL mirror of the same contract for
//     deployments that want the data to survive restarts.
//
// Both backends enforce the submission state machine themselves rather than
// trusting callers: transitions are only valid from pending to a terminal
// state, and re-applying the current terminal state is an idempotent no-op.
// Centralizing this in the store closes the check-then-act race a UI-side
// "button disabled" policy would leave open under concurrent reviewers.
//
// Every operation is atomic with respect to other operations on the same
// record: a failed call leaves the store exactly as it was.
package store

import (
	"context"
	"errors"

	"github.com/cadencehq/cadence/pkg/models"
)

// Sentinel errors returned by Store implementations. Handlers translate these
// into HTTP statuses in exactly one place; everything else wraps them with
// context via fmt.Errorf and %w.
var (
	// ErrNotFound signals an unknown submission, user, or FAQ ID.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange signals a track index outside the current track list.
	ErrOutOfRange = errors.New("track index out of range")

	// ErrInvalidTransition signals a status value outside the allowed set or
	// an attempt to move a submission out of a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict signals a uniqueness violation, e.g. a duplicate username.
	ErrConflict = errors.New("already exists")

	// ErrReadOnly signals that the application is in read-only maintenance
	// mode and writes are temporarily rejected.
	ErrReadOnly = errors.New("store is in read-only mode")
)

// Store defines the complete persistence interface for the portal.
//
// Mutating submission methods return the updated record (a defensive copy)
// so handlers can echo the post-mutation state without a second lookup, the
// same shape the original review console consumed.
//
// All methods accept a context for cancellation and tracing. No method blocks
// on anything but the backend itself; the in-memory backend completes in
// bounded, negligible time.
type Store interface {
	// CreateSubmission persists a new submission. The store assigns the next
	// monotonic ID, forces status to pending, stamps CreatedAt, generates a
	// stable TrackID for every track, and renumbers the tracks 1..n. The
	// caller's struct is updated in place with the assigned fields. Business
	// validation happens upstream in the intake workflow; the store only
	// persists.
	CreateSubmission(ctx context.Context, sub *models.Submission) error

	// ListSubmissions returns all submissions. Order is unspecified;
	// filtering, sorting, and pagination are review-workflow concerns.
	ListSubmissions(ctx context.Context) ([]*models.Submission, error)

	// GetSubmission returns the submission with the given ID, or ErrNotFound.
	GetSubmission(ctx context.Context, id int64) (*models.Submission, error)

	// SetSubmissionStatus applies a review decision. status must be approved
	// or declined (ErrInvalidTransition otherwise). Re-applying the current
	// terminal status is an idempotent no-op; any other transition out of a
	// terminal state fails with ErrInvalidTransition. Unknown IDs fail with
	// ErrNotFound.
	SetSubmissionStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.Submission, error)

	// DeleteArtwork removes the artwork attachment. Idempotent: deleting
	// already-absent artwork succeeds. Unknown IDs fail with ErrNotFound.
	DeleteArtwork(ctx context.Context, id int64) (*models.Submission, error)

	// DeleteTrack removes the track at the given list index, shifting later
	// tracks down one position and renumbering them. Fails with ErrOutOfRange
	// when the index does not address a current track, leaving the submission
	// unchanged.
	DeleteTrack(ctx context.Context, id int64, index int) (*models.Submission, error)

	// CreateUser persists a new user account, generating an ID when unset.
	// Fails with ErrConflict when the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser returns the user with the given ID, or ErrNotFound.
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)

	// GetUserByUsername returns the user with the given username, or
	// ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateFAQ persists a new FAQ entry, assigning the next ID.
	CreateFAQ(ctx context.Context, faq *models.FAQ) error

	// ListFAQs returns all FAQ entries ordered by position, then ID.
	ListFAQs(ctx context.Context) ([]*models.FAQ, error)

	// UpdateFAQ replaces the FAQ entry with the given ID, or ErrNotFound.
	UpdateFAQ(ctx context.Context, faq *models.FAQ) error

	// DeleteFAQ removes the FAQ entry with the given ID, or ErrNotFound.
	DeleteFAQ(ctx context.Context, id int64) error

	// Migrate prepares the backend schema. A no-op for the in-memory store.
	Migrate(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
