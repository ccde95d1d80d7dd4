package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/database"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/jwt"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	jwt.SetSecret("test-secret")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB) *models.UserModel {
	t.Helper()
	u := models.UserModel{Email: "admin@example.com", Password: "x", Name: "Admin", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func TestResolveCaller(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db)

	token, err := jwt.Sign(u.ID, u.Role, time.Hour)
	require.NoError(t, err)

	ident, err := ResolveCaller(db, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, ident.UserID)
	require.Equal(t, models.RoleAdmin, ident.Role)

	// Bearer prefix is accepted.
	ident, err = ResolveCaller(db, "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, u.ID, ident.UserID)
}

func TestResolveCallerDeletedUser(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db)

	token, err := jwt.Sign(u.ID, u.Role, time.Hour)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.UserModel{}, u.ID).Error)

	_, err = ResolveCaller(db, token)
	require.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestResolveCallerExpiredToken(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db)

	token, err := jwt.Sign(u.ID, u.Role, -time.Minute)
	require.NoError(t, err)

	_, err = ResolveCaller(db, token)
	require.ErrorIs(t, err, apperr.ErrTokenExpired)
}

func TestResolveCallerGarbage(t *testing.T) {
	db := newTestDB(t)

	_, err := ResolveCaller(db, "not-a-token")
	require.ErrorIs(t, err, apperr.ErrTokenInvalid)

	_, err = ResolveCaller(db, "")
	require.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestAuthMiddlewareStatuses(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/guarded", Auth(db), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusUnauthorized, do(""))
	require.Equal(t, http.StatusUnauthorized, do("Bearer junk"))

	expired, err := jwt.Sign(u.ID, u.Role, -time.Minute)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, do("Bearer "+expired))

	valid, err := jwt.Sign(u.ID, u.Role, time.Hour)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, do("Bearer "+valid))
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	db := newTestDB(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/open", OptionalAuth(db), func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.String(http.StatusOK, "authed")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer junk")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "anonymous", w.Body.String())
}

func TestNormalizeToken(t *testing.T) {
	require.Equal(t, "abc", NormalizeToken("abc"))
	require.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	require.Equal(t, "abc", NormalizeToken("bearer abc"))
	require.Equal(t, "", NormalizeToken("   "))
}
