package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"imagify-backend/internal/config"
	"imagify-backend/internal/handlers"
	"imagify-backend/internal/models"
	"imagify-backend/internal/repository"
	"imagify-backend/internal/services"
	apperrors "imagify-backend/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

type memoryStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	records []models.GenerationRecord
	updates int
}

var (
	_ repository.UserRepository  = (*memoryStore)(nil)
	_ repository.UsageRepository = (*memoryStore)(nil)
)

func (m *memoryStore) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if _, ok := m.users[user.ID]; ok {
		return apperrors.NewUserAlreadyExistsError()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if email != "" && u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.NewUserNotFoundError()
}

func (m *memoryStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NewUserNotFoundError()
	}
	return &u, nil
}

func (m *memoryStore) UpdateCreditBalance(ctx context.Context, id string, balance int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NewUserNotFoundError()
	}
	u.CreditBalance = balance
	m.users[id] = u
	return &u, nil
}

func (m *memoryStore) CreateRecord(ctx context.Context, record *models.GenerationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.CreatedAt = time.Now()
	m.records = append([]models.GenerationRecord{*record}, m.records...)
	return nil
}

func (m *memoryStore) GetUserHistory(ctx context.Context, userID string, limit int) ([]models.GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.GenerationRecord{}
	for _, r := range m.records {
		if r.UserID == userID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) Ping(ctx context.Context) error { return nil }

type testServer struct {
	store    *memoryStore
	userID   string
	clipdrop *httptest.Server
	calls    atomic.Int32
	router   http.Handler
}

// newTestServer seeds one user with three credits. An empty userID lets the
// store assign one.
func newTestServer(t *testing.T, userID string, clipdropStatus int, jwtSecret string) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)

	ts := &testServer{store: &memoryStore{users: map[string]models.User{}}}
	seed := &models.User{ID: userID, Name: "Ada", Email: "ada@example.com", CreditBalance: 3}
	require.NoError(t, ts.store.Create(context.Background(), seed))
	ts.userID = seed.ID

	ts.clipdrop = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		w.WriteHeader(clipdropStatus)
		if clipdropStatus == http.StatusOK {
			w.Write([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a})
		}
	}))
	t.Cleanup(ts.clipdrop.Close)

	generator := services.NewClipDropService(config.ClipDropConfig{
		APIKey:  "test-key",
		APIURL:  ts.clipdrop.URL,
		Timeout: 5 * time.Second,
	}, logger)

	h := &Handlers{
		Health: handlers.NewHealthHandler(ts.store),
		Image:  handlers.NewImageHandler(services.NewImageService(ts.store, ts.store, generator, nil, logger)),
		User:   handlers.NewUserHandler(services.NewUserService(ts.store)),
		Usage:  handlers.NewUsageHandler(services.NewUsageService(ts.store)),
	}
	ts.router = SetupRoutes(h, Options{Logger: logger, AllowedOrigin: "*", JWTSecret: jwtSecret})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, headers map[string]string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGenerateImageFlow(t *testing.T) {
	ts := newTestServer(t, "", http.StatusOK, "")

	body := ts.do(t, http.MethodPost, "/api/image/generate-image",
		`{"userId":"`+ts.userID+`","prompt":"a red fox"}`, nil)

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Image Generated", body["message"])
	assert.True(t, strings.HasPrefix(body["resultImage"].(string), "data:image/png;base64,iVBORw0"))
	assert.Equal(t, float64(2), body["creditBalance"])
	assert.Equal(t, int32(1), ts.calls.Load())
	assert.Equal(t, 1, ts.store.updates)

	credits := ts.do(t, http.MethodGet, "/api/user/credits?userId="+ts.userID, "", nil)
	assert.Equal(t, float64(2), credits["credits"])

	history := ts.do(t, http.MethodGet, "/api/image/history?userId="+ts.userID, "", nil)
	records := history["history"].([]interface{})
	require.Len(t, records, 1)
	assert.Equal(t, "clipdrop", records[0].(map[string]interface{})["source"])
}

func TestGenerateImageFlowFallback(t *testing.T) {
	ts := newTestServer(t, "", http.StatusInternalServerError, "")

	body := ts.do(t, http.MethodPost, "/api/image/generate-image",
		`{"userId":"`+ts.userID+`","prompt":"a red fox"}`, nil)

	assert.Equal(t, true, body["success"])
	assert.True(t, strings.HasPrefix(body["resultImage"].(string), "data:image/svg+xml;base64,"))
	assert.Equal(t, float64(2), body["creditBalance"])
	assert.Equal(t, int32(1), ts.calls.Load(), "the remote service is tried once")
}

func TestGenerateImageFlowDrainsCredits(t *testing.T) {
	ts := newTestServer(t, "", http.StatusOK, "")
	payload := `{"userId":"` + ts.userID + `","prompt":"a red fox"}`

	for want := 2; want >= 0; want-- {
		body := ts.do(t, http.MethodPost, "/api/image/generate-image", payload, nil)
		require.Equal(t, true, body["success"])
		assert.Equal(t, float64(want), body["creditBalance"])
	}

	body := ts.do(t, http.MethodPost, "/api/image/generate-image", payload, nil)
	assert.Equal(t, map[string]interface{}{
		"success": false, "message": "No Credit Balance", "creditBalance": float64(0),
	}, body)
	assert.Equal(t, int32(3), ts.calls.Load())
	assert.Equal(t, 3, ts.store.updates)
}

func TestGenerateImageFlowWithToken(t *testing.T) {
	const secret = "route-secret"
	ts := newTestServer(t, "", http.StatusOK, secret)

	unauth := ts.do(t, http.MethodPost, "/api/image/generate-image",
		`{"userId":"`+ts.userID+`","prompt":"a red fox"}`, nil)
	assert.Equal(t, map[string]interface{}{"success": false, "message": "Not Authorized. Login Again"}, unauth)
	assert.Zero(t, ts.calls.Load())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": ts.userID}).SignedString([]byte(secret))
	require.NoError(t, err)

	body := ts.do(t, http.MethodPost, "/api/image/generate-image",
		`{"prompt":"a red fox"}`, map[string]string{"token": token})
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["creditBalance"])
}

func TestHealthRoutes(t *testing.T) {
	ts := newTestServer(t, "", http.StatusOK, "secret")

	for _, path := range []string{"/", "/health"} {
		body := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, "healthy", body["status"], path)
	}
}

func TestGenerateImageFlowOpaqueUserID(t *testing.T) {
	ts := newTestServer(t, "u1", http.StatusOK, "")

	body := ts.do(t, http.MethodPost, "/api/image/generate-image", `{"userId":"u1","prompt":"a red fox"}`, nil)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["creditBalance"])

	credits := ts.do(t, http.MethodGet, "/api/user/credits?userId=u1", "", nil)
	assert.Equal(t, float64(2), credits["credits"])
}
