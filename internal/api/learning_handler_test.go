package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api/shared"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/domain"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/learning"
	"github.com/n0rb33rt/twaincards-backend-sub000/internal/service/quota"
)

// MockLearningService is a mock implementation of the learning.Service
// interface.
type MockLearningService struct {
	mock.Mock
}

func (m *MockLearningService) AnswerCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	answer learning.Answer,
) (*domain.LearningProgress, error) {
	args := m.Called(ctx, userID, cardID, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningProgress), args.Error(1)
}

func (m *MockLearningService) GetCardsToLearn(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	limit int,
) ([]learning.CardWithProgress, error) {
	args := m.Called(ctx, userID, collectionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.CardWithProgress), args.Error(1)
}

func (m *MockLearningService) GetCardsForReview(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]learning.CardWithProgress, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.CardWithProgress), args.Error(1)
}

func (m *MockLearningService) GetCardsForReviewByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
	limit int,
) ([]learning.CardWithProgress, error) {
	args := m.Called(ctx, userID, collectionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.CardWithProgress), args.Error(1)
}

func (m *MockLearningService) GetProgressForCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningProgress), args.Error(1)
}

func (m *MockLearningService) ResetCardProgress(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.LearningProgress, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningProgress), args.Error(1)
}

func (m *MockLearningService) ResetCollectionProgress(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) error {
	args := m.Called(ctx, userID, collectionID)
	return args.Error(0)
}

func (m *MockLearningService) GetStatusStatistics(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.LearningStatus]int), args.Error(1)
}

func (m *MockLearningService) GetStatusStatisticsForCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (map[domain.LearningStatus]int, error) {
	args := m.Called(ctx, userID, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.LearningStatus]int), args.Error(1)
}

// stubUserStore returns one fixed user for any lookup.
type stubUserStore struct {
	user *domain.User
}

func (s *stubUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// stubReviewCounter reports a fixed number of reviews for today.
type stubReviewCounter struct {
	used int
}

func (s stubReviewCounter) CountReviewsForUserBetween(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) (int, error) {
	return s.used, nil
}

// newAnswerRouter wires the answer endpoint the way the server router does,
// with a stand-in for the auth middleware that injects the given user ID.
func newAnswerRouter(
	learningService learning.Service,
	user *domain.User,
	usedToday int,
) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quotaService := quota.NewService(stubReviewCounter{used: usedToday}, 30, logger)
	handler := api.NewLearningHandler(learningService, quotaService, &stubUserStore{user: user}, logger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, user.ID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/api/cards/{cardID}/answer", handler.AnswerCard)
	return r
}

func basicUser() *domain.User {
	return &domain.User{ID: uuid.New(), Email: "student@example.com", Role: domain.RoleBasic}
}

func TestAnswerCardEndpoint(t *testing.T) {
	t.Parallel()
	user := basicUser()
	cardID := uuid.New()

	due := time.Date(2025, 3, 10, 12, 10, 0, 0, time.UTC)
	progress := &domain.LearningProgress{
		UserID:          user.ID,
		CardID:          cardID,
		RepetitionCount: 1,
		CorrectAnswers:  1,
		EaseFactor:      2.5,
		Status:          domain.StatusLearning,
		NextReviewDue:   &due,
	}

	service := &MockLearningService{}
	service.On("AnswerCard", mock.Anything, user.ID, cardID, mock.MatchedBy(func(a learning.Answer) bool {
		return a.Correct && a.SessionID == nil
	})).Return(progress, nil)

	router := newAnswerRouter(service, user, 5)

	req := httptest.NewRequest(http.MethodPost, "/api/cards/"+cardID.String()+"/answer",
		strings.NewReader(`{"is_correct": true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ProgressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, cardID, resp.CardID)
	assert.Equal(t, string(domain.StatusLearning), resp.Status)
	assert.Equal(t, 1, resp.CorrectAnswers)

	service.AssertExpectations(t)
}

func TestAnswerCardEndpointQuotaExhausted(t *testing.T) {
	t.Parallel()
	user := basicUser()
	service := &MockLearningService{}

	router := newAnswerRouter(service, user, 30)

	req := httptest.NewRequest(http.MethodPost, "/api/cards/"+uuid.NewString()+"/answer",
		strings.NewReader(`{"is_correct": false}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Daily study limit reached")
	service.AssertNotCalled(t, "AnswerCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswerCardEndpointPremiumBypassesQuota(t *testing.T) {
	t.Parallel()
	user := basicUser()
	user.Role = domain.RolePremium
	cardID := uuid.New()

	progress := &domain.LearningProgress{
		UserID:     user.ID,
		CardID:     cardID,
		EaseFactor: 2.5,
		Status:     domain.StatusNew,
	}

	service := &MockLearningService{}
	service.On("AnswerCard", mock.Anything, user.ID, cardID, mock.Anything).Return(progress, nil)

	router := newAnswerRouter(service, user, 500)

	req := httptest.NewRequest(http.MethodPost, "/api/cards/"+cardID.String()+"/answer",
		strings.NewReader(`{"is_correct": false}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestAnswerCardEndpointValidation(t *testing.T) {
	t.Parallel()
	user := basicUser()

	testCases := []struct {
		name string
		path string
		body string
	}{
		{
			name: "missing is_correct",
			path: "/api/cards/" + uuid.NewString() + "/answer",
			body: `{"response_time_ms": 1200}`,
		},
		{
			name: "negative response time",
			path: "/api/cards/" + uuid.NewString() + "/answer",
			body: `{"is_correct": true, "response_time_ms": -1}`,
		},
		{
			name: "malformed JSON",
			path: "/api/cards/" + uuid.NewString() + "/answer",
			body: `{"is_correct":`,
		},
		{
			name: "malformed card ID",
			path: "/api/cards/not-a-uuid/answer",
			body: `{"is_correct": true}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := &MockLearningService{}
			router := newAnswerRouter(service, user, 0)

			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			service.AssertNotCalled(t, "AnswerCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAnswerCardEndpointAccessDenied(t *testing.T) {
	t.Parallel()
	user := basicUser()
	cardID := uuid.New()

	service := &MockLearningService{}
	service.On("AnswerCard", mock.Anything, user.ID, cardID, mock.Anything).
		Return(nil, learning.ErrAccessDenied)

	router := newAnswerRouter(service, user, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/cards/"+cardID.String()+"/answer",
		strings.NewReader(`{"is_correct": true}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You do not have access to this collection")
	service.AssertExpectations(t)
}

func TestAnswerCardEndpointRequiresAuthentication(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quotaService := quota.NewService(stubReviewCounter{}, 30, logger)
	handler := api.NewLearningHandler(&MockLearningService{}, quotaService, &stubUserStore{user: basicUser()}, logger)

	r := chi.NewRouter()
	r.Post("/api/cards/{cardID}/answer", handler.AnswerCard)

	req := httptest.NewRequest(http.MethodPost, "/api/cards/"+uuid.NewString()+"/answer",
		strings.NewReader(`{"is_correct": true}`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
