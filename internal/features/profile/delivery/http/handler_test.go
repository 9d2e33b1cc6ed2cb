package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameportal-backend/internal/features/profile/models"
	"gameportal-backend/internal/features/profile/service"
)

type fakeProfileService struct {
	users map[string]*models.User
}

func (s *fakeProfileService) GetOrCreateByAddress(_ context.Context, address string) (*models.User, error) {
	if u, ok := s.users[address]; ok {
		return u, nil
	}
	u := &models.User{ID: "new-id", WalletAddress: address}
	s.users[address] = u
	return u, nil
}

func (s *fakeProfileService) UpdateName(_ context.Context, address, name string) (*models.User, error) {
	u, ok := s.users[address]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	u.Name = &name
	return u, nil
}

func (s *fakeProfileService) Exists(_ context.Context, address string) (bool, error) {
	_, ok := s.users[address]
	return ok, nil
}

func setupRouter(svc service.ProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewProfileHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func TestGetProfile(t *testing.T) {
	router := setupRouter(&fakeProfileService{users: make(map[string]*models.User)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile?address=EQwallet1", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "EQwallet1", body.User.WalletAddress)
}

func TestGetProfile_MissingAddress(t *testing.T) {
	router := setupRouter(&fakeProfileService{users: make(map[string]*models.User)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfile_InvalidAddress(t *testing.T) {
	router := setupRouter(&fakeProfileService{users: make(map[string]*models.User)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile?address=bad%20address", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	svc := &fakeProfileService{users: map[string]*models.User{
		"EQwallet1": {ID: "u1", WalletAddress: "EQwallet1"},
	}}
	router := setupRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/profile?address=EQwallet1",
		strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.User.Name)
	assert.Equal(t, "Alice", *body.User.Name)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	router := setupRouter(&fakeProfileService{users: make(map[string]*models.User)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/profile?address=EQstranger",
		strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestUpdateProfile_MissingName(t *testing.T) {
	svc := &fakeProfileService{users: map[string]*models.User{
		"EQwallet1": {ID: "u1", WalletAddress: "EQwallet1"},
	}}
	router := setupRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/profile?address=EQwallet1",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
