package activity

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/database"
	"github.com/pulsefit/core/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRecordAppendsRow(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(db, nil)

	u := models.UserModel{Email: "admin@example.com", Password: "x", Name: "Admin", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&u).Error)

	rec.Record(Actor{UserID: &u.ID, IP: "192.0.2.1"}, "create", "page", 7, "created page")

	var row models.ActivityLogModel
	require.NoError(t, db.First(&row).Error)
	require.Equal(t, "create", row.Action)
	require.Equal(t, "page", row.EntityType)
	require.EqualValues(t, 7, row.EntityID)
	require.Equal(t, "192.0.2.1", row.IPAddress)
	require.NotNil(t, row.UserID)
	require.Equal(t, u.ID, *row.UserID)
}

func TestRecordWithAnonymousActor(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(db, nil)

	rec.Record(Actor{IP: "203.0.113.5"}, "create", "contact_submission", 1, "public form")

	var row models.ActivityLogModel
	require.NoError(t, db.First(&row).Error)
	require.Nil(t, row.UserID)
}

func TestListJoinsUserAndFilters(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(db, nil)
	gin.SetMode(gin.TestMode)

	u := models.UserModel{Email: "admin@example.com", Password: "x", Name: "Admin", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&u).Error)

	rec.Record(Actor{UserID: &u.ID}, "create", "page", 1, "a")
	rec.Record(Actor{UserID: &u.ID}, "delete", "page", 1, "b")
	rec.Record(Actor{}, "create", "contact_submission", 2, "c")

	r := gin.New()
	// The listing is admin-only in production; the gate is not under test.
	passthrough := func(c *gin.Context) { c.Next() }
	NewHandler(db).RegisterRoutes(r.Group(""), passthrough)

	get := func(query string) (int, map[string]json.RawMessage) {
		req := httptest.NewRequest(http.MethodGet, "/settings/activity/logs"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}

	code, body := get("")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, "3", string(body["total"]))

	var entries []struct {
		Action    string `json:"action"`
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}
	require.NoError(t, json.Unmarshal(body["items"], &entries))
	require.Len(t, entries, 3)

	code, body = get("?entity_type=page&action=delete")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, "1", string(body["total"]))
	require.NoError(t, json.Unmarshal(body["items"], &entries))
	require.Equal(t, "delete", entries[0].Action)
	require.Equal(t, "Admin", entries[0].UserName)
	require.Equal(t, "admin@example.com", entries[0].UserEmail)
}
