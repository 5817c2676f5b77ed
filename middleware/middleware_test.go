package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"powerup/database/repository/memory"
	"powerup/models"
	"powerup/services/notification"
	"powerup/services/trainer"
	"powerup/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	synced []utils.Identity
	err    error
}

func (f *fakeUserService) Sync(_ context.Context, id utils.Identity) error {
	f.synced = append(f.synced, id)
	return f.err
}

func (f *fakeUserService) GetUserByID(context.Context, string) (*models.User, error) {
	return nil, utils.ErrNotFound
}

func init() {
	gin.SetMode(gin.TestMode)
}

func bearer(t *testing.T, id utils.Identity) string {
	t.Helper()
	token, err := utils.GenerateToken(id, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	users := &fakeUserService{}
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(CtxUserID), "role": c.GetString(CtxRole)})
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "Bearer abc").Code)
	assert.Empty(t, users.synced)

	w := serve(r, http.MethodGet, "/me", bearer(t, utils.Identity{UserID: "u1", Role: models.RoleTrainer, Name: "Ada"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1","role":"trainer"}`, w.Body.String())
	require.Len(t, users.synced, 1)
	assert.Equal(t, "Ada", users.synced[0].Name)

	// A failed sync does not block the request.
	users.err = errors.New("store down")
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/me", bearer(t, utils.Identity{UserID: "u1"})).Code)
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(nil), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", bearer(t, utils.Identity{UserID: "u1"})).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin", bearer(t, utils.Identity{UserID: "u1", Role: models.RoleAdmin})).Code)
}

func TestTrainerMiddleware(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	gym := &models.Gym{Name: "Central", OpeningTime: 480, ClosingTime: 1200}
	require.NoError(t, repos.Gyms.Create(ctx, gym))
	svc, err := trainer.NewDefaultTrainerService(repos, notification.NewDefaultNotificationService(repos, nil), nil)
	require.NoError(t, err)
	tr, err := svc.CreateTrainer(ctx, models.CreateTrainerRequest{Name: "Ada", PhoneNumber: "1", GymID: gym.ID, UserID: "coach"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/trainer", JWTAuthMiddleware(nil), TrainerMiddleware(svc), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxTrainerID))
	})

	w := serve(r, http.MethodGet, "/trainer", bearer(t, utils.Identity{UserID: "coach"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tr.ID, w.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/trainer", bearer(t, utils.Identity{UserID: "someone"})).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("2.2.2.2"))
}
