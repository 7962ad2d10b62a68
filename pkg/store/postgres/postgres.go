// Package postgres provides an optional PostgreSQL implementation of the
// [github.com/cadencehq/cadence/pkg/store.Store] interface using GORM.
//
// The in-memory store is the portal's canonical backend; this one exists for
// deployments that want submissions to survive a restart. It upholds the same
// contract: the submission state machine is enforced inside a transaction so
// concurrent reviewers cannot race a decision, and attachment mutations are
// read-modify-write under the same transaction.
//
// Nested attachment data (tracks, artwork, profile and streaming links) is
// stored as JSONB columns, so the relational schema stays flat: submissions,
// users, and faqs.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cadencehq/cadence/pkg/models"
	"github.com/cadencehq/cadence/pkg/store"
)

// PostgresStore implements the Store interface using PostgreSQL with GORM.
type PostgresStore struct {
	db *gorm.DB
}

// New connects to PostgreSQL and returns a store backed by it.
func New(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

var _ store.Store = (*PostgresStore)(nil)

func (s *PostgresStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	sub.ID = 0
	sub.Status = models.StatusPending
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	for i := range sub.Tracks {
		if sub.Tracks[i].ID.IsZero() {
			sub.Tracks[i].ID = models.NewTrackID()
		}
		sub.Tracks[i].AudioFile.TrackNumber = i + 1
	}

	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	var subs []*models.Submission
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

func (s *PostgresStore) GetSubmission(ctx context.Context, id int64) (*models.Submission, error) {
	var sub models.Submission
	if err := s.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &sub, nil
}

func (s *PostgresStore) SetSubmissionStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.Submission, error) {
	if !status.Terminal() {
		return nil, store.ErrInvalidTransition
	}

	var sub models.Submission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		if sub.Status == status {
			// Idempotent re-application of the same decision.
			return nil
		}
		if sub.Status != models.StatusPending {
			return store.ErrInvalidTransition
		}
		sub.Status = status
		return tx.Save(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *PostgresStore) DeleteArtwork(ctx context.Context, id int64) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		sub.Artwork = nil
		return tx.Save(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *PostgresStore) DeleteTrack(ctx context.Context, id int64, index int) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		if index < 0 || index >= len(sub.Tracks) {
			return store.ErrOutOfRange
		}
		sub.Tracks = append(sub.Tracks[:index], sub.Tracks[index+1:]...)
		for i := range sub.Tracks {
			sub.Tracks[i].AudioFile.TrackNumber = i + 1
		}
		return tx.Save(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrConflict
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
		return tx.Create(user).Error
	})
}

func (s *PostgresStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id.String()).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) CreateFAQ(ctx context.Context, faq *models.FAQ) error {
	faq.ID = 0
	if err := s.db.WithContext(ctx).Create(faq).Error; err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	var faqs []*models.FAQ
	if err := s.db.WithContext(ctx).Order("position asc, id asc").Find(&faqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return faqs, nil
}

func (s *PostgresStore) UpdateFAQ(ctx context.Context, faq *models.FAQ) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FAQ
		if err := tx.First(&existing, faq.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		faq.CreatedAt = existing.CreatedAt
		return tx.Save(faq).Error
	})
}

func (s *PostgresStore) DeleteFAQ(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.FAQ{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete faq: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Migrate creates or updates the schema using GORM's AutoMigrate.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Submission{},
		&models.User{},
		&models.FAQ{},
	)
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
