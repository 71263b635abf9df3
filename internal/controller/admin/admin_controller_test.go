package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/middleware"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	service.AuthService

	gotUserID uint
	gotStatus model.UserStatus
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (service.Actor, error) {
	switch token {
	case "admin":
		return service.Actor{UserID: 1, Role: model.RoleAdmin}, nil
	case "mod":
		return service.Actor{UserID: 4, Role: model.RoleModerator}, nil
	}
	return service.Actor{}, service.ErrUnauthorized
}

func (s *stubAuth) SetUserStatus(_ context.Context, _ service.Actor, userID uint, status model.UserStatus) (*dto.UserResponse, error) {
	if userID == 404 {
		return nil, service.ErrNotFound
	}
	s.gotUserID, s.gotStatus = userID, status
	return &dto.UserResponse{ID: userID, Status: status}, nil
}

func newTestRouter(auth *stubAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/api/v1", middleware.Auth(auth))
	NewAdminController(nil, auth).RegisterRoutes(rg)
	return r
}

func patch(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserStatusHandlers(t *testing.T) {
	auth := &stubAuth{}
	r := newTestRouter(auth)

	w := patch(r, "/api/v1/admin/users/7/deactivate", "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, model.UserInactive, user.Status)
	assert.Equal(t, uint(7), auth.gotUserID)

	w = patch(r, "/api/v1/admin/users/7/activate", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.UserActive, auth.gotStatus)

	w = patch(r, "/api/v1/admin/users/404/activate", "admin")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = patch(r, "/api/v1/admin/users/7/deactivate", "mod")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
