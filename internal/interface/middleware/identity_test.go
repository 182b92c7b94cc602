package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/helpers"
)

// stubUserRepo serves a single user by id.
type stubUserRepo struct {
	user *entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) NameTaken(ctx context.Context, firstName, lastName string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) SoftDelete(ctx context.Context, id, deletedBy string) error { return nil }

func newGateFixture(t *testing.T, user *entity.User) (*application.AuthService, *helpers.JWTManager) {
	t.Helper()
	jwt := helpers.NewJWTManager("gate-secret", time.Hour)
	return application.NewAuthService(&stubUserRepo{user: user}, jwt, nil), jwt
}

func performRequest(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func protectedRouter(auth *application.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireIdentity(auth), func(c *gin.Context) {
		id := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": id.ID, "name": id.DisplayName})
	})
	return r
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestRequireIdentityPassesValidToken(t *testing.T) {
	user := &entity.User{ID: "u1", FirstName: "Ana", LastName: "Lopez", Authenticated: true}
	auth, jwt := newGateFixture(t, user)
	token, _, err := jwt.GenerateToken(user.ID, "ana")
	require.NoError(t, err)

	w := performRequest(protectedRouter(auth), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana Lopez")
}

func TestRequireIdentityMissingToken(t *testing.T) {
	auth, _ := newGateFixture(t, nil)

	w := performRequest(protectedRouter(auth), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "You don't have access to this resource", errorBody(t, w))
}

func TestRequireIdentityGarbageToken(t *testing.T) {
	auth, _ := newGateFixture(t, nil)

	w := performRequest(protectedRouter(auth), "not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "You don't have access to this resource", errorBody(t, w))
}

func TestRequireIdentityPendingUser(t *testing.T) {
	user := &entity.User{ID: "u1", FirstName: "Ana", LastName: "Lopez", Authenticated: false}
	auth, jwt := newGateFixture(t, user)
	token, _, err := jwt.GenerateToken(user.ID, "ana")
	require.NoError(t, err)

	w := performRequest(protectedRouter(auth), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User unauthenticated, please contact support.", errorBody(t, w))
}

func TestOptionalIdentityProceedsWithoutToken(t *testing.T) {
	auth, _ := newGateFixture(t, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", OptionalIdentity(auth), func(c *gin.Context) {
		assert.Nil(t, IdentityFrom(c))
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalIdentityAttachesIdentity(t *testing.T) {
	user := &entity.User{ID: "u1", FirstName: "Ana", LastName: "Lopez", Authenticated: true}
	auth, jwt := newGateFixture(t, user)
	token, _, err := jwt.GenerateToken(user.ID, "ana")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", OptionalIdentity(auth), func(c *gin.Context) {
		id := IdentityFrom(c)
		require.NotNil(t, id)
		assert.Equal(t, "u1", id.ID)
		c.Status(http.StatusOK)
	})

	w := performRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
