package cadence

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cadencehq/cadence/pkg/client"
	"github.com/cadencehq/cadence/pkg/models"
	"github.com/cadencehq/cadence/pkg/store"
)

// respondJSON writes a JSON response with the given status code.
func (a *App) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			a.log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// respondError writes a JSON error response.
func (a *App) respondError(w http.ResponseWriter, status int, message string) {
	a.respondJSON(w, status, map[string]string{"error": message})
}

// storeError translates store sentinel errors into HTTP statuses. Every
// handler funnels unexpected store errors through here so the mapping lives
// in one place.
func (a *App) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		a.respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrOutOfRange):
		a.respondError(w, http.StatusBadRequest, "track index out of range")
	case errors.Is(err, store.ErrInvalidTransition):
		a.respondError(w, http.StatusConflict, "submission already reviewed")
	case errors.Is(err, store.ErrConflict):
		a.respondError(w, http.StatusConflict, "already exists")
	case errors.Is(err, store.ErrReadOnly):
		a.respondError(w, http.StatusServiceUnavailable, "service is in read-only mode")
	default:
		a.log.Error().Err(err).Msg("store operation failed")
		a.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// handleHealth reports service liveness.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"readOnly": a.IsReadOnly(),
	})
}

// Submissions

// handleCreateSubmission is the public intake endpoint: it validates the
// draft, persists it as a pending submission, and notifies connected review
// consoles.
func (a *App) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var draft models.SubmissionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := a.validateDraft(&draft); len(fields) > 0 {
		a.respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fields,
		})
		return
	}

	sub := draft.Submission()
	if err := a.store.CreateSubmission(r.Context(), sub); err != nil {
		a.storeError(w, err)
		return
	}

	a.log.Info().
		Int64("id", sub.ID).
		Str("artist", sub.ArtistName).
		Str("release", sub.ReleaseTitle).
		Msg("submission received")
	a.hub.broadcast(EventSubmissionCreated, sub)
	a.respondJSON(w, http.StatusCreated, sub)
}

// handleListSubmissions serves the review console list: the full submission
// set narrowed, ordered, and sliced according to the query parameters.
func (a *App) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r.URL.Query())
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	subs, err := a.store.ListSubmissions(r.Context())
	if err != nil {
		a.storeError(w, err)
		return
	}

	subs = filterSubmissions(subs, query)
	sortSubmissions(subs, query)
	subs = paginate(subs, query)

	a.respondJSON(w, http.StatusOK, subs)
}

// handleGetSubmission serves one submission by ID.
func (a *App) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	sub, err := a.store.GetSubmission(r.Context(), id)
	if err != nil {
		a.storeError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, sub)
}

// handleUpdateSubmissionStatus applies a review decision. The request must
// name a terminal status; the store enforces the lifecycle rules and this
// handler only translates the outcome.
func (a *App) handleUpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	var req client.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Terminal() {
		a.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("status must be %q or %q", models.StatusApproved, models.StatusDeclined))
		return
	}

	sub, err := a.store.SetSubmissionStatus(r.Context(), id, req.Status)
	if err != nil {
		a.storeError(w, err)
		return
	}

	a.log.Info().
		Int64("id", sub.ID).
		Str("status", string(sub.Status)).
		Msg("submission reviewed")
	a.hub.broadcast(EventSubmissionUpdated, sub)
	a.respondJSON(w, http.StatusOK, sub)
}

// handleDeleteArtwork removes a submission's artwork attachment.
func (a *App) handleDeleteArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	sub, err := a.store.DeleteArtwork(r.Context(), id)
	if err != nil {
		a.storeError(w, err)
		return
	}

	a.log.Info().Int64("id", id).Msg("artwork deleted")
	a.respondJSON(w, http.StatusOK, sub)
}

// handleDeleteTrack removes the track at the given index.
func (a *App) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid submission id")
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid track index")
		return
	}

	sub, err := a.store.DeleteTrack(r.Context(), id, index)
	if err != nil {
		a.storeError(w, err)
		return
	}

	a.log.Info().Int64("id", id).Int("index", index).Msg("track deleted")
	a.respondJSON(w, http.StatusOK, sub)
}

// Downloads

// handleDownloadArtwork resolves the stored artwork URL for the review
// console. 404 when the artwork has been deleted.
func (a *App) handleDownloadArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	sub, err := a.store.GetSubmission(r.Context(), id)
	if err != nil {
		a.storeError(w, err)
		return
	}
	if sub.Artwork == nil || sub.Artwork.URL == "" {
		a.respondError(w, http.StatusNotFound, "no artwork on this submission")
		return
	}

	a.respondJSON(w, http.StatusOK, client.DownloadResponse{DownloadURL: sub.Artwork.URL})
}

// handleDownloadTrack resolves the audio URL of the track at the given index.
func (a *App) handleDownloadTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid submission id")
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid track index")
		return
	}

	sub, err := a.store.GetSubmission(r.Context(), id)
	if err != nil {
		a.storeError(w, err)
		return
	}
	if index < 0 || index >= len(sub.Tracks) {
		a.respondError(w, http.StatusBadRequest, "track index out of range")
		return
	}
	track := sub.Tracks[index]
	if track.AudioFile.URL == "" {
		a.respondError(w, http.StatusNotFound, "no audio file on this track")
		return
	}

	a.respondJSON(w, http.StatusOK, client.DownloadResponse{DownloadURL: track.AudioFile.URL})
}

// Uploads
//
// File bytes are not stored; the upload endpoints hand out placeholder URLs
// that the intake form embeds in the submission draft. A real deployment
// would swap these for presigned object-storage URLs without changing the
// intake contract.

func (a *App) handleUploadArtwork(w http.ResponseWriter, r *http.Request) {
	url := fmt.Sprintf("https://storage.example.com/artwork/%s.jpg", uuid.NewString())
	a.respondJSON(w, http.StatusOK, client.UploadResponse{URL: url})
}

func (a *App) handleUploadAudio(w http.ResponseWriter, r *http.Request) {
	url := fmt.Sprintf("https://storage.example.com/audio/%s.wav", uuid.NewString())
	a.respondJSON(w, http.StatusOK, client.UploadResponse{URL: url})
}
