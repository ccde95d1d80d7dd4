package auth

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pulsefit/core/internal/database"
	pkgjwt "github.com/pulsefit/core/internal/pkg/jwt"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "correct-horse"

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	pkgjwt.SetSecret("test-secret")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db, activity.NewRecorder(db, nil)), db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.UserModel{Email: email, Password: string(hash), Name: "Test Admin", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func TestLoginSuccess(t *testing.T) {
	svc, db := newTestService(t)
	createUser(t, db, "admin@example.com")

	token, u, err := svc.Login("admin@example.com", testPassword, "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, u.LastLogin)

	claims, err := pkgjwt.Parse(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	svc, db := newTestService(t)
	createUser(t, db, "admin@example.com")

	_, _, err := svc.Login("Admin@Example.COM", testPassword, "")
	require.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, db := newTestService(t)
	createUser(t, db, "admin@example.com")

	_, _, wrongPwd := svc.Login("admin@example.com", "nope", "")
	_, _, noUser := svc.Login("ghost@example.com", testPassword, "")

	require.ErrorIs(t, wrongPwd, apperr.ErrInvalidCredentials)
	require.ErrorIs(t, noUser, apperr.ErrInvalidCredentials)
	require.Equal(t, wrongPwd.Error(), noUser.Error())
}

func TestGetByIDMissingUser(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "admin@example.com")

	got, err := svc.GetByID(u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	require.NoError(t, db.Delete(&models.UserModel{}, u.ID).Error)
	_, err = svc.GetByID(u.ID)
	require.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestChangePasswordTooShort(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "admin@example.com")

	err := svc.ChangePassword(u.ID, testPassword, "short", activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrPasswordTooShort)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "admin@example.com")

	err := svc.ChangePassword(u.ID, "wrong-current", "a-new-password", activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestChangePasswordThenLogin(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "admin@example.com")

	require.NoError(t, svc.ChangePassword(u.ID, testPassword, "a-new-password", activity.Actor{}))

	_, _, err := svc.Login("admin@example.com", testPassword, "")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, _, err = svc.Login("admin@example.com", "a-new-password", "")
	require.NoError(t, err)
}

func TestLoginAndLogoutJournal(t *testing.T) {
	svc, db := newTestService(t)
	u := createUser(t, db, "admin@example.com")

	_, _, err := svc.Login("admin@example.com", testPassword, "10.0.0.1")
	require.NoError(t, err)
	svc.Logout(activity.Actor{UserID: &u.ID, IP: "10.0.0.1"})

	var actions []string
	require.NoError(t, db.Model(&models.ActivityLogModel{}).
		Order("id ASC").Pluck("action", &actions).Error)
	require.Equal(t, []string{"login", "logout"}, actions)
}

func TestRequireRole(t *testing.T) {
	require.True(t, RequireRole(models.RoleAdmin, models.RoleAdmin, models.RoleSuperAdmin))
	require.False(t, RequireRole("viewer", models.RoleAdmin, models.RoleSuperAdmin))
}
