package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tarakeshp07/livekit-server/internal/domain"
	"github.com/Tarakeshp07/livekit-server/internal/store"
	"github.com/Tarakeshp07/livekit-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockUserStore struct {
	findManyFunc              func(ctx context.Context, filter store.ListFilter, skip, limit int) ([]domain.User, int64, error)
	findByIDFunc              func(ctx context.Context, id string) (*domain.User, error)
	findByEmailFunc           func(ctx context.Context, email string) (*domain.User, error)
	findByUsernameOrEmailFunc func(ctx context.Context, username, email string) (*domain.User, error)
	insertFunc                func(ctx context.Context, user *domain.User) (*domain.User, error)
	updateByIDFunc            func(ctx context.Context, id string, patch *domain.UserPatch) (*domain.User, error)
	deleteByIDFunc            func(ctx context.Context, id string) (*domain.User, error)
	statsFunc                 func(ctx context.Context) (*domain.UserStats, error)
}

var errNotImplemented = errors.New("not implemented")

func (m *mockUserStore) FindMany(ctx context.Context, filter store.ListFilter, skip, limit int) ([]domain.User, int64, error) {
	if m.findManyFunc != nil {
		return m.findManyFunc(ctx, filter, skip, limit)
	}
	return nil, 0, errNotImplemented
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errNotImplemented
}

func (m *mockUserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	if m.findByUsernameOrEmailFunc != nil {
		return m.findByUsernameOrEmailFunc(ctx, username, email)
	}
	return nil, errNotImplemented
}

func (m *mockUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, user)
	}
	return nil, errNotImplemented
}

func (m *mockUserStore) UpdateByID(ctx context.Context, id string, patch *domain.UserPatch) (*domain.User, error) {
	if m.updateByIDFunc != nil {
		return m.updateByIDFunc(ctx, id, patch)
	}
	return nil, errNotImplemented
}

func (m *mockUserStore) DeleteByID(ctx context.Context, id string) (*domain.User, error) {
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserStore) Stats(ctx context.Context) (*domain.UserStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return nil, errNotImplemented
}

// =============================================================================
// Helpers
// =============================================================================

// envelope mirrors the response shape for decoding in assertions
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Errors     []string        `json:"errors"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// perform runs one request against the router and returns the recorder
func perform(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded response into the envelope
func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// bearerClaims verifies a "Bearer "-prefixed token and returns its claims
func bearerClaims(t *testing.T, token, secret string) *utils.Claims {
	t.Helper()
	require.True(t, strings.HasPrefix(token, "Bearer "))
	claims := &utils.Claims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimPrefix(token, "Bearer "), claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }
