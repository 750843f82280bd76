package http_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restaurant-locator/internal/config"
	deliveryhttp "github.com/restaurant-locator/internal/delivery/http"
	"github.com/restaurant-locator/internal/delivery/http/handler"
	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/pkg/errors"
	"github.com/restaurant-locator/internal/usecase"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

type MockPlacesGateway struct {
	mock.Mock
}

func (m *MockPlacesGateway) SearchNearby(ctx context.Context, lat, lng float64) ([]json.RawMessage, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Persist(ctx context.Context, places []*domain.Place) error {
	args := m.Called(ctx, places)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type testServer struct {
	server    *deliveryhttp.Server
	verifier  *MockVerifier
	gateway   *MockPlacesGateway
	persister *MockPersister
	users     *MockUserRepository
}

func newTestServer(t *testing.T, requireLocationAuth bool) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Auth:   config.AuthConfig{RequireLocationAuth: requireLocationAuth},
	}
	logger := zap.NewNop()
	ts := &testServer{
		verifier:  &MockVerifier{},
		gateway:   &MockPlacesGateway{},
		persister: &MockPersister{},
		users:     &MockUserRepository{},
	}

	clock := func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }
	locationUC := usecase.NewLocationUseCase(ts.gateway, ts.persister, logger)
	userUC := usecase.NewUserUseCase(ts.users, logger, clock)

	ts.server = deliveryhttp.NewServer(
		cfg,
		logger,
		ts.verifier,
		handler.NewLocationHandler(locationUC, logger),
		handler.NewProfileHandler(userUC, logger),
	)
	return ts
}

func (ts *testServer) do(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	resp, err := ts.server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

func placeRecord(id string, lat, lng float64) json.RawMessage {
	raw, _ := json.Marshal(map[string]interface{}{
		"id":          id,
		"displayName": map[string]string{"text": "Place " + id},
		"location":    map[string]float64{"latitude": lat, "longitude": lng},
	})
	return raw
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, true)

	status, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestLocationInfo(t *testing.T) {
	identity := &domain.Identity{SubjectID: "uid-1"}

	t.Run("returns nearby restaurants", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.verifier.On("Verify", mock.Anything, "good").Return(identity, nil)
		ts.gateway.On("SearchNearby", mock.Anything, 40.0, -74.0).
			Return([]json.RawMessage{placeRecord("a", 40.001, -74.0), placeRecord("b", 40.0, -74.0)}, nil)
		ts.persister.On("Persist", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/api/location-info?lat=40&lng=-74", nil)
		req.Header.Set("Authorization", "Bearer good")
		status, body := ts.do(t, req)

		require.Equal(t, http.StatusOK, status)
		places, ok := body["nearbyRestaurants"].([]interface{})
		require.True(t, ok)
		require.Len(t, places, 2)
		first := places[0].(map[string]interface{})
		assert.Equal(t, "a", first["externalPlaceId"])
		assert.InDelta(t, 111, first["distance"], 1)
		ts.persister.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		ts := newTestServer(t, true)

		status, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/location-info?lat=40&lng=-74", nil))

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Missing token", body["error"])
		ts.gateway.AssertNotCalled(t, "SearchNearby", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed header", func(t *testing.T) {
		ts := newTestServer(t, true)

		req := httptest.NewRequest(http.MethodGet, "/api/location-info?lat=40&lng=-74", nil)
		req.Header.Set("Authorization", "Token abc")
		status, body := ts.do(t, req)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Missing token", body["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.verifier.On("Verify", mock.Anything, "bad").Return(nil, errors.ErrUnauthorized.WithCause(stderrors.New("expired")))

		req := httptest.NewRequest(http.MethodGet, "/api/location-info?lat=40&lng=-74", nil)
		req.Header.Set("Authorization", "Bearer bad")
		status, body := ts.do(t, req)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid token", body["error"])
		ts.gateway.AssertNotCalled(t, "SearchNearby", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		for _, query := range []string{"lat=abc&lng=1", "lat=91&lng=0", "lng=10", "lat=0&lng=181", "lat=NaN&lng=0"} {
			ts := newTestServer(t, false)

			status, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/location-info?"+query, nil))

			assert.Equal(t, http.StatusBadRequest, status, query)
			assert.Equal(t, errors.CodeInvalidCoordinates, body["code"], query)
			ts.gateway.AssertNotCalled(t, "SearchNearby", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("gateway failure", func(t *testing.T) {
		ts := newTestServer(t, false)
		ts.gateway.On("SearchNearby", mock.Anything, 1.5, 2.5).
			Return(nil, errors.ErrGateway.WithCause(stderrors.New("status 403")))

		status, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/location-info?lat=1.5&lng=2.5", nil))

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Failed to fetch nearby restaurants", body["error"])
		ts.persister.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})

	t.Run("no auth required", func(t *testing.T) {
		ts := newTestServer(t, false)
		ts.gateway.On("SearchNearby", mock.Anything, 0.0, 0.0).Return([]json.RawMessage{}, nil)

		status, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/location-info?lat=0&lng=0", nil))

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []interface{}{}, body["nearbyRestaurants"])
		ts.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
		ts.persister.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})
}

func TestSyncProfile(t *testing.T) {
	tokenEmail := "token@example.com"
	identity := &domain.Identity{SubjectID: "uid-1", Email: &tokenEmail}

	t.Run("creates user with body email", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.verifier.On("Verify", mock.Anything, "good").Return(identity, nil)
		ts.users.On("FindBySubjectID", mock.Anything, "uid-1").Return(nil, errors.ErrUserNotFound)
		ts.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email != nil && *u.Email == "body@example.com"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sync-profile", strings.NewReader(`{"email":"body@example.com"}`))
		req.Header.Set("Authorization", "Bearer good")
		req.Header.Set("Content-Type", "application/json")
		status, body := ts.do(t, req)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "User synced", body["message"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, float64(7), user["id"])
		assert.Equal(t, "uid-1", user["subjectId"])
		assert.Equal(t, "body@example.com", user["email"])
		ts.users.AssertExpectations(t)
	})

	t.Run("empty body falls back to token email", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.verifier.On("Verify", mock.Anything, "good").Return(identity, nil)
		ts.users.On("FindBySubjectID", mock.Anything, "uid-1").
			Return(&domain.User{ID: 3, SubjectID: "uid-1"}, nil)
		ts.users.On("Update", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sync-profile", nil)
		req.Header.Set("Authorization", "Bearer good")
		status, body := ts.do(t, req)

		require.Equal(t, http.StatusOK, status)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, float64(3), user["id"])
		assert.Equal(t, tokenEmail, user["email"])
	})

	t.Run("invalid email", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.verifier.On("Verify", mock.Anything, "good").Return(identity, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/sync-profile", strings.NewReader(`{"email":"nope"}`))
		req.Header.Set("Authorization", "Bearer good")
		req.Header.Set("Content-Type", "application/json")
		status, body := ts.do(t, req)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REQUEST", body["code"])
		ts.users.AssertNotCalled(t, "FindBySubjectID", mock.Anything, mock.Anything)
	})

	t.Run("invalid token never touches storage", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.verifier.On("Verify", mock.Anything, "bad").Return(nil, errors.ErrUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/api/sync-profile", nil)
		req.Header.Set("Authorization", "Bearer bad")
		status, body := ts.do(t, req)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid token", body["error"])
		ts.users.AssertNotCalled(t, "FindBySubjectID", mock.Anything, mock.Anything)
		ts.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("sync profile requires auth even when location is open", func(t *testing.T) {
		ts := newTestServer(t, false)

		status, _ := ts.do(t, httptest.NewRequest(http.MethodPost, "/api/sync-profile", nil))

		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("storage failure", func(t *testing.T) {
		ts := newTestServer(t, true)
		ts.verifier.On("Verify", mock.Anything, "good").Return(identity, nil)
		ts.users.On("FindBySubjectID", mock.Anything, "uid-1").Return(nil, stderrors.New("connection refused"))

		req := httptest.NewRequest(http.MethodPost, "/api/sync-profile", nil)
		req.Header.Set("Authorization", "Bearer good")
		status, body := ts.do(t, req)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, errors.CodePersistenceError, body["code"])
	})
}
