package api

import (
	"log/slog"
	"net/http"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api/shared"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/learning"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/quota"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// LearningHandler handles the study workflow HTTP requests.
type LearningHandler struct {
	learningService learning.Service
	quotaService    *quota.Service
	userStore       store.UserStore
	logger          *slog.Logger
}

// NewLearningHandler creates a new LearningHandler with the given dependencies.
func NewLearningHandler(
	learningService learning.Service,
	quotaService *quota.Service,
	userStore store.UserStore,
	logger *slog.Logger,
) *LearningHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &LearningHandler{
		learningService: learningService,
		quotaService:    quotaService,
		userStore:       userStore,
		logger:          logger.With(slog.String("component", "learning_handler")),
	}
}

// AnswerCard handles POST /api/cards/{cardID}/answer.
//
// The daily quota is checked before the answer is processed; users over
// their limit get 429 and the answer is not recorded.
func (h *LearningHandler) AnswerCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	cardID, err := parseUUIDParam(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid answer")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	allowed, err := h.quotaService.CanStudyMore(r.Context(), user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !allowed {
		shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
			"Daily study limit reached", nil)
		return
	}

	progress, err := h.learningService.AnswerCard(r.Context(), userID, cardID, learning.Answer{
		Correct:        *req.IsCorrect,
		ResponseTimeMs: req.ResponseTimeMs,
		SessionID:      req.SessionID,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProgressResponse(progress))
}

// GetProgress handles GET /api/cards/{cardID}/progress.
func (h *LearningHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	cardID, err := parseUUIDParam(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	progress, err := h.learningService.GetProgressForCard(r.Context(), userID, cardID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProgressResponse(progress))
}

// ResetCardProgress handles POST /api/cards/{cardID}/progress/reset.
func (h *LearningHandler) ResetCardProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	cardID, err := parseUUIDParam(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	progress, err := h.learningService.ResetCardProgress(r.Context(), userID, cardID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProgressResponse(progress))
}

// GetCardsToLearn handles GET /api/collections/{collectionID}/learn.
func (h *LearningHandler) GetCardsToLearn(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	collectionID, err := parseUUIDParam(r, "collectionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	cards, err := h.learningService.GetCardsToLearn(r.Context(), userID, collectionID, parseLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newStudyCardResponses(cards))
}

// GetReviewQueue handles GET /api/review.
func (h *LearningHandler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	cards, err := h.learningService.GetCardsForReview(r.Context(), userID, parseLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newStudyCardResponses(cards))
}

// GetCollectionReviewQueue handles GET /api/collections/{collectionID}/review.
func (h *LearningHandler) GetCollectionReviewQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	collectionID, err := parseUUIDParam(r, "collectionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	cards, err := h.learningService.GetCardsForReviewByCollection(
		r.Context(), userID, collectionID, parseLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newStudyCardResponses(cards))
}

// ResetCollectionProgress handles POST /api/collections/{collectionID}/progress/reset.
func (h *LearningHandler) ResetCollectionProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	collectionID, err := parseUUIDParam(r, "collectionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	if err := h.learningService.ResetCollectionProgress(r.Context(), userID, collectionID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// GetStatusStatistics handles GET /api/statistics/status.
func (h *LearningHandler) GetStatusStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	counts, err := h.learningService.GetStatusStatistics(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newStatusStatisticsResponse(counts))
}

// GetCollectionStatusStatistics handles GET /api/collections/{collectionID}/statistics/status.
func (h *LearningHandler) GetCollectionStatusStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	collectionID, err := parseUUIDParam(r, "collectionID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	counts, err := h.learningService.GetStatusStatisticsForCollection(r.Context(), userID, collectionID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newStatusStatisticsResponse(counts))
}
