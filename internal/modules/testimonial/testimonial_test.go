package testimonial

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pulsefit/core/internal/database"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db, activity.NewRecorder(db, nil))
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestRatingDefaultsToFive(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&CreateTestimonialDTO{ClientName: "Dana", Content: "Great gym"}, activity.Actor{})
	require.NoError(t, err)
	require.Equal(t, 5, created.Rating)
}

func TestRatingBounds(t *testing.T) {
	svc := newTestService(t)

	for _, rating := range []int{0, 6, -3} {
		_, err := svc.Create(&CreateTestimonialDTO{
			ClientName: "Dana",
			Content:    "x",
			Rating:     intPtr(rating),
		}, activity.Actor{})
		require.ErrorIs(t, err, apperr.ErrValidation, "rating %d", rating)
	}

	created, err := svc.Create(&CreateTestimonialDTO{
		ClientName: "Dana",
		Content:    "x",
		Rating:     intPtr(1),
	}, activity.Actor{})
	require.NoError(t, err)

	_, err = svc.Update(created.ID, &UpdateTestimonialDTO{Rating: intPtr(9)}, activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestApprovalVisibility(t *testing.T) {
	svc := newTestService(t)

	approved, err := svc.Create(&CreateTestimonialDTO{
		ClientName: "Approved",
		Content:    "x",
		IsApproved: boolPtr(true),
	}, activity.Actor{})
	require.NoError(t, err)
	pending, err := svc.Create(&CreateTestimonialDTO{ClientName: "Pending", Content: "y"}, activity.Actor{})
	require.NoError(t, err)

	public, total, err := svc.List(pagination.Query{}, false)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, approved.ID, public[0].ID)

	_, err = svc.Get(pending.ID, false)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.Get(pending.ID, true)
	require.NoError(t, err)
	require.False(t, got.IsApproved)
}
