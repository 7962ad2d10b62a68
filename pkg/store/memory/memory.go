// Package memory provides the canonical in-memory implementation of the
// [github.com/cadencehq/cadence/pkg/store.Store] interface.
//
// All state lives in plain maps guarded by a single RWMutex; every operation
// holds the lock for its full read-modify-write cycle, so each call is atomic
// with respect to every other call. Throughput is not a design goal here and
// a store-level lock is sufficient.
//
// Returned records are deep copies. Callers can never reach stored state
// through a returned pointer, which is what makes the "failed operation never
// corrupts the store" guarantee trivial to uphold.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cadencehq/cadence/pkg/models"
	"github.com/cadencehq/cadence/pkg/store"
)

// MemoryStore implements store.Store with mutex-guarded maps and monotonic
// ID counters. IDs are never reused, even after a record changes.
type MemoryStore struct {
	mu sync.RWMutex

	submissions map[int64]*models.Submission
	users       map[models.UserID]*models.User
	usernames   map[string]models.UserID
	faqs        map[int64]*models.FAQ

	nextSubmissionID int64
	nextFAQID        int64
}

// New creates an empty in-memory store.
func New() *MemoryStore {
	return &MemoryStore{
		submissions:      make(map[int64]*models.Submission),
		users:            make(map[models.UserID]*models.User),
		usernames:        make(map[string]models.UserID),
		faqs:             make(map[int64]*models.FAQ),
		nextSubmissionID: 1,
		nextFAQID:        1,
	}
}

var _ store.Store = (*MemoryStore)(nil)

func (s *MemoryStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = s.nextSubmissionID
	s.nextSubmissionID++
	sub.Status = models.StatusPending
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	normalizeTracks(sub.Tracks)

	s.submissions[sub.ID] = sub.Clone()
	return nil
}

// normalizeTracks assigns stable IDs to tracks that lack one and renumbers
// the list 1..n so TrackNumber always matches display order.
func normalizeTracks(tracks models.TrackList) {
	for i := range tracks {
		if tracks[i].ID.IsZero() {
			tracks[i].ID = models.NewTrackID()
		}
		tracks[i].AudioFile.TrackNumber = i + 1
	}
}

func (s *MemoryStore) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]*models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		subs = append(subs, sub.Clone())
	}
	return subs, nil
}

func (s *MemoryStore) GetSubmission(ctx context.Context, id int64) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return sub.Clone(), nil
}

func (s *MemoryStore) SetSubmissionStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.Submission, error) {
	if !status.Terminal() {
		return nil, store.ErrInvalidTransition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if sub.Status == status {
		// Idempotent re-application of the same decision.
		return sub.Clone(), nil
	}
	if sub.Status != models.StatusPending {
		return nil, store.ErrInvalidTransition
	}

	sub.Status = status
	return sub.Clone(), nil
}

func (s *MemoryStore) DeleteArtwork(ctx context.Context, id int64) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	sub.Artwork = nil
	return sub.Clone(), nil
}

func (s *MemoryStore) DeleteTrack(ctx context.Context, id int64, index int) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if index < 0 || index >= len(sub.Tracks) {
		return nil, store.ErrOutOfRange
	}

	sub.Tracks = append(sub.Tracks[:index], sub.Tracks[index+1:]...)
	normalizeTracks(sub.Tracks)
	return sub.Clone(), nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[user.Username]; taken {
		return store.ErrConflict
	}
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	s.users[user.ID] = &stored
	s.usernames[user.Username] = user.ID
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

func (s *MemoryStore) CreateFAQ(ctx context.Context, faq *models.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	faq.ID = s.nextFAQID
	s.nextFAQID++
	now := time.Now().UTC()
	if faq.CreatedAt.IsZero() {
		faq.CreatedAt = now
	}
	faq.UpdatedAt = now

	stored := *faq
	s.faqs[faq.ID] = &stored
	return nil
}

func (s *MemoryStore) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	faqs := make([]*models.FAQ, 0, len(s.faqs))
	for _, faq := range s.faqs {
		out := *faq
		faqs = append(faqs, &out)
	}
	sort.Slice(faqs, func(i, j int) bool {
		if faqs[i].Position != faqs[j].Position {
			return faqs[i].Position < faqs[j].Position
		}
		return faqs[i].ID < faqs[j].ID
	})
	return faqs, nil
}

func (s *MemoryStore) UpdateFAQ(ctx context.Context, faq *models.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.faqs[faq.ID]
	if !ok {
		return store.ErrNotFound
	}
	faq.CreatedAt = existing.CreatedAt
	faq.UpdatedAt = time.Now().UTC()

	stored := *faq
	s.faqs[faq.ID] = &stored
	return nil
}

func (s *MemoryStore) DeleteFAQ(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faqs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.faqs, id)
	return nil
}

// Migrate is a no-op for the in-memory store.
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
