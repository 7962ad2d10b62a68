package cadence

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cadencehq/cadence/pkg/client"
	"github.com/cadencehq/cadence/pkg/models"
	"github.com/cadencehq/cadence/pkg/store"
)

// handleRegister creates a new artist account. Accounts registered here never
// carry the team role; team reviewers are provisioned through configuration.
func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req client.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		a.respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if len(req.Password) < 8 {
		a.respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, "failed to process password")
		return
	}

	user := &models.User{
		ID:           models.NewUserID(),
		Username:     req.Username,
		PasswordHash: string(hash),
		IsTeamMember: false,
	}
	if err := a.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			a.respondError(w, http.StatusConflict, "username already taken")
			return
		}
		a.storeError(w, err)
		return
	}

	token, err := a.sessions.Create(user)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	a.log.Info().Str("username", user.Username).Msg("account registered")
	a.respondJSON(w, http.StatusCreated, client.AuthResponse{Token: token, User: user})
}

// handleLogin authenticates a user and issues a bearer token.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.respondError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		a.storeError(w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		a.respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := a.sessions.Create(user)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	a.log.Info().Str("username", user.Username).Msg("user logged in")
	a.respondJSON(w, http.StatusOK, client.AuthResponse{Token: token, User: user})
}

// handleLogout invalidates the caller's token. Always succeeds; logging out
// with a stale or missing token is not an error worth reporting.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		a.sessions.Delete(token)
	}
	a.respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// handleCurrentUser returns the account behind the caller's token.
func (a *App) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := a.authenticate(r)
	if !ok {
		a.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	a.respondJSON(w, http.StatusOK, user)
}
