package api

import (
	"log/slog"
	"net/http"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api/shared"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/quota"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/store"
)

// QuotaHandler reports the user's standing against the daily study limit.
type QuotaHandler struct {
	quotaService *quota.Service
	userStore    store.UserStore
	logger       *slog.Logger
}

// NewQuotaHandler creates a new QuotaHandler with the given dependencies.
func NewQuotaHandler(quotaService *quota.Service, userStore store.UserStore, logger *slog.Logger) *QuotaHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &QuotaHandler{
		quotaService: quotaService,
		userStore:    userStore,
		logger:       logger.With(slog.String("component", "quota_handler")),
	}
}

// Get handles GET /api/quota.
func (h *QuotaHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	status, err := h.quotaService.GetStatus(r.Context(), user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, status)
}
