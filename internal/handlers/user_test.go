package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imovia/imovia-backend/internal/models"
	"github.com/imovia/imovia-backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// memUserRepo is an in-memory UserRepository for handler tests
type memUserRepo struct {
	users map[uint]models.User
}

func newMemUserRepo(users ...models.User) *memUserRepo {
	m := &memUserRepo{users: make(map[uint]models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserRepo) CreateUser(user *models.User) error {
	user.ID = uint(len(m.users) + 1)
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (m *memUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, user := range m.users {
		if user.FirebaseUID == firebaseUID {
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) UpdateUser(user *models.User) error {
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) DeleteUser(id uint) error {
	delete(m.users, id)
	return nil
}

func newUserTestServer(repo *memUserRepo, userID uint) *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()

	api := e.Group("")
	if userID != 0 {
		api.Use(asUser(userID))
	}
	NewUserHandler(repo).RegisterProfileRoutes(api)

	return e
}

func TestDeleteProfile(t *testing.T) {
	repo := newMemUserRepo(models.User{ID: 1, Name: "Ana", Email: "ana@example.com"})
	e := newUserTestServer(repo, 1)

	req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err := repo.GetUserByID(1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteProfileUnauthenticated(t *testing.T) {
	repo := newMemUserRepo(models.User{ID: 1, Name: "Ana", Email: "ana@example.com"})
	e := newUserTestServer(repo, 0)

	req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, err := repo.GetUserByID(1)
	assert.NoError(t, err, "rejected request must not delete the account")
}
