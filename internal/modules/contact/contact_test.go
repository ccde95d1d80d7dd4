package contact

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pulsefit/core/internal/database"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db, activity.NewRecorder(db, nil)), db
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Create(&CreateSubmissionDTO{
		Name:    "  Casey ",
		Email:   " Casey@Example.COM ",
		Message: "Do you offer day passes?",
	}, activity.Actor{IP: "198.51.100.7"})
	require.NoError(t, err)
	require.Equal(t, "Casey", sub.Name)
	require.Equal(t, "casey@example.com", sub.Email)
	require.False(t, sub.IsRead)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Create(&CreateSubmissionDTO{Name: "A", Email: "a@example.com", Message: "hi"}, activity.Actor{})
	require.NoError(t, err)

	read, err := svc.MarkRead(sub.ID, activity.Actor{})
	require.NoError(t, err)
	require.True(t, read.IsRead)

	again, err := svc.MarkRead(sub.ID, activity.Actor{})
	require.NoError(t, err)
	require.True(t, again.IsRead)
}

func TestUnreadFilter(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Create(&CreateSubmissionDTO{Name: "A", Email: "a@example.com", Message: "hi"}, activity.Actor{})
	require.NoError(t, err)
	_, err = svc.Create(&CreateSubmissionDTO{Name: "B", Email: "b@example.com", Message: "hello"}, activity.Actor{})
	require.NoError(t, err)

	_, err = svc.MarkRead(first.ID, activity.Actor{})
	require.NoError(t, err)

	unread, total, err := svc.List(true, pagination.Query{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "b@example.com", unread[0].Email)

	_, total, err = svc.List(false, pagination.Query{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}

func TestDeleteSubmission(t *testing.T) {
	svc, db := newTestService(t)

	sub, err := svc.Create(&CreateSubmissionDTO{Name: "A", Email: "a@example.com", Message: "hi"}, activity.Actor{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(sub.ID, activity.Actor{}))
	_, err = svc.Get(sub.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.ErrorIs(t, svc.Delete(sub.ID, activity.Actor{}), apperr.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&models.ActivityLogModel{}).
		Where("entity_type = ?", "contact_submission").Count(&n).Error)
	require.EqualValues(t, 2, n)
}
