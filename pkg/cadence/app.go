package cadence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cadencehq/cadence/pkg/models"
	"github.com/cadencehq/cadence/pkg/store"
	"github.com/cadencehq/cadence/pkg/store/memory"
	"github.com/cadencehq/cadence/pkg/store/postgres"
)

// Config holds application configuration.
type Config struct {
	// Store configuration. The in-memory store is the default; UsePostgres
	// switches to the durable backend at PostgresDSN.
	UsePostgres bool
	PostgresDSN string

	// ReadOnly starts the application with writes rejected; it can be
	// toggled at runtime for maintenance windows.
	ReadOnly bool

	// TeamUsername/TeamPassword seed a team reviewer account at startup so a
	// fresh in-memory deployment has someone who can open the review console.
	// Left empty, no account is seeded.
	TeamUsername string
	TeamPassword string

	// SessionTTL bounds how long an issued bearer token stays valid.
	SessionTTL time.Duration

	// Server configuration
	ServerPort string

	// LogOutput overrides where logs are written; defaults to stdout.
	LogOutput io.Writer
}

// App holds the application state: the store behind its read-only guard, the
// session store, the websocket event hub, and the intake validator. All of it
// is constructed here and passed by handle; nothing is a package-level
// singleton.
type App struct {
	store    store.Store
	config   *Config
	log      zerolog.Logger
	sessions *sessionStore
	hub      *eventHub
	validate *validator.Validate

	// readOnly is toggled at runtime while request goroutines read it, so it
	// must be atomic.
	readOnly atomic.Bool
}

// New creates a new application instance.
func New(config *Config) (*App, error) {
	out := config.LogOutput
	if out == nil {
		out = os.Stdout
	}
	log := zerolog.New(out).With().Timestamp().Logger()

	var appStore store.Store
	if config.UsePostgres {
		pg, err := postgres.New(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appStore = pg
		log.Info().Msg("connected to PostgreSQL")
	} else {
		appStore = memory.New()
		log.Info().Msg("using in-memory store")
	}

	ttl := config.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	app := &App{
		config:   config,
		log:      log,
		sessions: newSessionStore(ttl),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	app.readOnly.Store(config.ReadOnly)
	app.hub = newEventHub(log)

	// Wrap the store with read-only protection
	app.store = store.NewReadOnlyStore(appStore, app.IsReadOnly)

	return app, nil
}

// Close closes the application and its resources
func (a *App) Close() error {
	a.hub.close()
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the underlying store (useful for testing)
func (a *App) Store() store.Store {
	return a.store
}

// SetReadOnly toggles maintenance mode. While enabled, every write operation
// is rejected with [store.ErrReadOnly] and reads continue to work; the switch
// is enforced at the store wrapper, so it covers every mutation path.
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly.Store(readOnly)
	a.log.Info().Bool("read_only", readOnly).Msg("application read-only mode changed")
}

// IsReadOnly returns whether the application is currently in read-only mode.
func (a *App) IsReadOnly() bool {
	return a.readOnly.Load()
}

// seedTeamAccount creates the configured team reviewer account if it does not
// exist yet. Safe to call on every startup.
func (a *App) seedTeamAccount(ctx context.Context) error {
	if a.config.TeamUsername == "" || a.config.TeamPassword == "" {
		return nil
	}
	if a.IsReadOnly() {
		a.log.Warn().Msg("read-only mode, skipping team account seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.config.TeamPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash team password: %w", err)
	}

	err = a.store.CreateUser(ctx, &models.User{
		Username:     a.config.TeamUsername,
		PasswordHash: string(hash),
		IsTeamMember: true,
	})
	if errors.Is(err, store.ErrConflict) {
		// Already seeded on a previous startup.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed team account: %w", err)
	}
	a.log.Info().Str("username", a.config.TeamUsername).Msg("seeded team account")
	return nil
}

// getEnv retrieves an environment variable value with a fallback default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
