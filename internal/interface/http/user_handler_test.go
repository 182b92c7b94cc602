package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/validation"
)

// stubUserRepo serves one user by username for duplicate checks.
type stubUserRepo struct {
	existing *entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if r.existing != nil && r.existing.Username == username {
		return r.existing, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) NameTaken(ctx context.Context, firstName, lastName string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) SoftDelete(ctx context.Context, id, deletedBy string) error { return nil }

func createUserRouter(repo repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	h := NewUserHandler(application.NewUserService(repo, nil), nil)
	r := gin.New()
	r.POST("/users", h.Create)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUserDuplicateAnswersConflict(t *testing.T) {
	repo := &stubUserRepo{existing: &entity.User{ID: "u1", Username: "ana"}}

	w := postJSON(createUserRouter(repo), "/users",
		`{"first_name":"Ana","last_name":"Lopez","username":"ana","password":"password123"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User Already Created")
}

func TestCreateUserSucceeds(t *testing.T) {
	w := postJSON(createUserRouter(&stubUserRepo{}), "/users",
		`{"first_name":"Ana","last_name":"Lopez","username":"ana","password":"password123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestCreateUserMissingFields(t *testing.T) {
	w := postJSON(createUserRouter(&stubUserRepo{}), "/users", `{"first_name":"Ana"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
