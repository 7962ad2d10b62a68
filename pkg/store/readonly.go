package store

import (
	"context"
	"fmt"

	"github.com/cadencehq/cadence/pkg/models"
)

// ReadOnlyStore wraps a Store and rejects write operations while the
// application is in read-only mode.
//
// The read-only state is determined dynamically by the isReadOnly function so
// the application can toggle maintenance mode at runtime without recreating
// the store. Read operations always pass through.
type ReadOnlyStore struct {
	Store
	isReadOnly func() bool
}

// NewReadOnlyStore creates a new read-only wrapper for a store
func NewReadOnlyStore(store Store, isReadOnly func() bool) Store {
	return &ReadOnlyStore{
		Store:      store,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying store
func (r *ReadOnlyStore) Unwrap() Store {
	return r.Store
}

// checkReadOnly returns an error if the store is in read-only mode
func (r *ReadOnlyStore) checkReadOnly() error {
	if r.isReadOnly() {
		return fmt.Errorf("operation denied: %w", ErrReadOnly)
	}
	return nil
}

// Write operations - check read-only mode first

func (r *ReadOnlyStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateSubmission(ctx, sub)
}

func (r *ReadOnlyStore) SetSubmissionStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.Submission, error) {
	if err := r.checkReadOnly(); err != nil {
		return nil, err
	}
	return r.Store.SetSubmissionStatus(ctx, id, status)
}

func (r *ReadOnlyStore) DeleteArtwork(ctx context.Context, id int64) (*models.Submission, error) {
	if err := r.checkReadOnly(); err != nil {
		return nil, err
	}
	return r.Store.DeleteArtwork(ctx, id)
}

func (r *ReadOnlyStore) DeleteTrack(ctx context.Context, id int64, index int) (*models.Submission, error) {
	if err := r.checkReadOnly(); err != nil {
		return nil, err
	}
	return r.Store.DeleteTrack(ctx, id, index)
}

func (r *ReadOnlyStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateUser(ctx, user)
}

func (r *ReadOnlyStore) CreateFAQ(ctx context.Context, faq *models.FAQ) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateFAQ(ctx, faq)
}

func (r *ReadOnlyStore) UpdateFAQ(ctx context.Context, faq *models.FAQ) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateFAQ(ctx, faq)
}

func (r *ReadOnlyStore) DeleteFAQ(ctx context.Context, id int64) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteFAQ(ctx, id)
}

// Read operations and Migrate pass through without checks; schema
// preparation must work even when the portal starts in maintenance mode.
// These are already defined in the embedded Store interface.
