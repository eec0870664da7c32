package api

import (
	"log/slog"
	"net/http"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api/shared"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/studysession"
)

// StudySessionHandler handles study session HTTP requests.
type StudySessionHandler struct {
	sessionService studysession.Service
	logger         *slog.Logger
}

// NewStudySessionHandler creates a new StudySessionHandler with the given
// dependencies.
func NewStudySessionHandler(sessionService studysession.Service, logger *slog.Logger) *StudySessionHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &StudySessionHandler{
		sessionService: sessionService,
		logger:         logger.With(slog.String("component", "session_handler")),
	}
}

// Create handles POST /api/study-sessions.
func (h *StudySessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Collection ID is required")
		return
	}

	session, err := h.sessionService.Create(
		r.Context(), userID, req.CollectionID, req.DeviceType, req.Platform)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// Complete handles POST /api/study-sessions/{sessionID}/complete.
//
// The body is optional; when present it may override the session
// counters.
func (h *StudySessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	sessionID, err := parseUUIDParam(r, "sessionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var override *studysession.CompletionOverride
	if r.Body != nil && r.ContentLength != 0 {
		var req CompleteSessionRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := shared.ValidateRequest(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid counters")
			return
		}

		if req.CardsReviewed != nil || req.CorrectAnswers != nil {
			override = &studysession.CompletionOverride{}
			if req.CardsReviewed != nil {
				override.CardsReviewed = *req.CardsReviewed
			}
			if req.CorrectAnswers != nil {
				override.CorrectAnswers = *req.CorrectAnswers
			}
		}
	}

	summary, err := h.sessionService.Complete(r.Context(), userID, sessionID, override)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// Get handles GET /api/study-sessions/{sessionID}.
func (h *StudySessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	sessionID, err := parseUUIDParam(r, "sessionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, err := h.sessionService.Get(r.Context(), userID, sessionID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, session)
}

// List handles GET /api/study-sessions.
func (h *StudySessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListByUser(r.Context(), userID, parseOffset(r), parseLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessions)
}

// ListByCollection handles GET /api/collections/{collectionID}/sessions.
func (h *StudySessionHandler) ListByCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	collectionID, err := parseUUIDParam(r, "collectionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	sessions, err := h.sessionService.ListRecentByCollection(
		r.Context(), userID, collectionID, parseLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessions)
}
