package cadence

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cadencehq/cadence/pkg/models"
)

// handleListFAQs serves the public FAQ list in display order.
func (a *App) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := a.store.ListFAQs(r.Context())
	if err != nil {
		a.storeError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, faqs)
}

// handleCreateFAQ adds a FAQ entry.
func (a *App) handleCreateFAQ(w http.ResponseWriter, r *http.Request) {
	var faq models.FAQ
	if err := json.NewDecoder(r.Body).Decode(&faq); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
		a.respondError(w, http.StatusBadRequest, "question and answer are required")
		return
	}

	faq.ID = 0
	if err := a.store.CreateFAQ(r.Context(), &faq); err != nil {
		a.storeError(w, err)
		return
	}

	a.log.Info().Int64("id", faq.ID).Msg("faq created")
	a.respondJSON(w, http.StatusCreated, faq)
}

// handleUpdateFAQ replaces a FAQ entry.
func (a *App) handleUpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid faq id")
		return
	}

	var faq models.FAQ
	if err := json.NewDecoder(r.Body).Decode(&faq); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
		a.respondError(w, http.StatusBadRequest, "question and answer are required")
		return
	}

	faq.ID = id
	if err := a.store.UpdateFAQ(r.Context(), &faq); err != nil {
		a.storeError(w, err)
		return
	}

	a.log.Info().Int64("id", faq.ID).Msg("faq updated")
	a.respondJSON(w, http.StatusOK, faq)
}

// handleDeleteFAQ removes a FAQ entry.
func (a *App) handleDeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid faq id")
		return
	}

	if err := a.store.DeleteFAQ(r.Context(), id); err != nil {
		a.storeError(w, err)
		return
	}

	a.log.Info().Int64("id", id).Msg("faq deleted")
	w.WriteHeader(http.StatusNoContent)
}
