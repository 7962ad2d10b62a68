package cadence

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Handler builds the full HTTP routing table.
//
// Public surface:
//
//	GET  /health, /api/health                     - Service health status
//	POST /api/auth/register                       - Register artist account
//	POST /api/auth/login                          - Authenticate
//	POST /api/auth/logout                         - End session
//	GET  /api/auth/me                             - Current authenticated user
//	POST /api/submissions                         - Public intake: create submission
//	POST /api/upload/artwork                      - Artwork placeholder URL
//	POST /api/upload/audio                        - Audio placeholder URL
//	GET  /api/faqs                                - Public FAQ list
//
// Team-gated surface (Bearer token, team role):
//
//	GET    /api/submissions                       - List/filter/sort/paginate
//	GET    /api/submissions/{id}                  - Single submission
//	PATCH  /api/submissions/{id}                  - Approve/decline
//	DELETE /api/submissions/{id}/artwork          - Remove artwork attachment
//	GET    /api/submissions/{id}/artwork/download - Resolve artwork URL
//	DELETE /api/submissions/{id}/tracks/{index}   - Remove track attachment
//	GET    /api/submissions/{id}/tracks/{index}/download - Resolve audio URL
//	POST   /api/faqs                              - Add FAQ entry
//	PUT    /api/faqs/{id}                         - Update FAQ entry
//	DELETE /api/faqs/{id}                         - Remove FAQ entry
//	GET    /api/events                            - Websocket lifecycle events
func (a *App) Handler() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	// Auth routes
	api.HandleFunc("/auth/register", a.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", a.handleLogin).Methods("POST")
	api.HandleFunc("/auth/logout", a.handleLogout).Methods("POST")
	api.HandleFunc("/auth/me", a.handleCurrentUser).Methods("GET")

	// Public intake routes
	api.HandleFunc("/submissions", a.handleCreateSubmission).Methods("POST")
	api.HandleFunc("/upload/artwork", a.handleUploadArtwork).Methods("POST")
	api.HandleFunc("/upload/audio", a.handleUploadAudio).Methods("POST")
	api.HandleFunc("/faqs", a.handleListFAQs).Methods("GET")

	// Review routes, team only
	api.HandleFunc("/submissions", a.requireTeam(a.handleListSubmissions)).Methods("GET")
	api.HandleFunc("/submissions/{id}", a.requireTeam(a.handleGetSubmission)).Methods("GET")
	api.HandleFunc("/submissions/{id}", a.requireTeam(a.handleUpdateSubmissionStatus)).Methods("PATCH")
	api.HandleFunc("/submissions/{id}/artwork", a.requireTeam(a.handleDeleteArtwork)).Methods("DELETE")
	api.HandleFunc("/submissions/{id}/artwork/download", a.requireTeam(a.handleDownloadArtwork)).Methods("GET")
	api.HandleFunc("/submissions/{id}/tracks/{index}", a.requireTeam(a.handleDeleteTrack)).Methods("DELETE")
	api.HandleFunc("/submissions/{id}/tracks/{index}/download", a.requireTeam(a.handleDownloadTrack)).Methods("GET")

	// FAQ management, team only
	api.HandleFunc("/faqs", a.requireTeam(a.handleCreateFAQ)).Methods("POST")
	api.HandleFunc("/faqs/{id}", a.requireTeam(a.handleUpdateFAQ)).Methods("PUT")
	api.HandleFunc("/faqs/{id}", a.requireTeam(a.handleDeleteFAQ)).Methods("DELETE")

	// Live review-console events, team only
	api.HandleFunc("/events", a.requireTeam(a.hub.handleEvents)).Methods("GET")

	// Health check route (outside of /api prefix)
	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	return a.logRequests(router)
}

// Run starts the HTTP server and blocks until the context is cancelled or a
// fatal server error occurs. On shutdown it migrates nothing and deletes
// nothing; in-memory state is simply gone, which is the documented
// durability contract.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	// The in-memory backend's Migrate is a no-op; for PostgreSQL this keeps
	// the schema current before serving.
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to prepare store: %w", err)
	}
	if err := a.seedTeamAccount(ctx); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.log.Info().Str("addr", addr).Msg("starting cadence server")

	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		// Context cancelled, shutdown gracefully
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
