package membership

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

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestFeaturesRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreatePlan(&CreatePlanDTO{
		Name:     "Basic",
		Price:    intPtr(2000),
		Features: models.StringArray{"Gym Access"},
	}, activity.Actor{})
	require.NoError(t, err)

	got, err := svc.GetPlan(created.ID, false)
	require.NoError(t, err)
	require.Equal(t, models.StringArray{"Gym Access"}, got.Features)
	require.Equal(t, 2000, got.Price)
	require.Equal(t, "monthly", got.BillingPeriod)
}

func TestFeaturesAcceptSerializedForm(t *testing.T) {
	var features models.StringArray
	require.NoError(t, features.UnmarshalJSON([]byte(`"[\"Sauna\",\"Pool\"]"`)))
	require.Equal(t, models.StringArray{"Sauna", "Pool"}, features)
}

func TestCreatePlanRejectsNegativePrice(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreatePlan(&CreatePlanDTO{Name: "Bad", Price: intPtr(-1)}, activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPlanVisibility(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreatePlan(&CreatePlanDTO{Name: "Visible", Price: intPtr(1000)}, activity.Actor{})
	require.NoError(t, err)
	_, err = svc.CreatePlan(&CreatePlanDTO{Name: "Retired", Price: intPtr(1500), IsActive: boolPtr(false)}, activity.Actor{})
	require.NoError(t, err)

	public, total, err := svc.ListPlans(pagination.Query{}, false)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Visible", public[0].Name)

	_, total, err = svc.ListPlans(pagination.Query{}, true)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}

func TestUpdatePlanPartial(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreatePlan(&CreatePlanDTO{
		Name:        "Pro",
		Price:       intPtr(5000),
		Description: "everything included",
	}, activity.Actor{})
	require.NoError(t, err)

	updated, err := svc.UpdatePlan(created.ID, &UpdatePlanDTO{Price: intPtr(5500)}, activity.Actor{})
	require.NoError(t, err)
	require.Equal(t, 5500, updated.Price)
	require.Equal(t, "Pro", updated.Name)
	require.Equal(t, "everything included", updated.Description)

	_, err = svc.UpdatePlan(created.ID, &UpdatePlanDTO{Price: intPtr(-10)}, activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestInquiryLifecycle(t *testing.T) {
	svc, db := newTestService(t)

	plan, err := svc.CreatePlan(&CreatePlanDTO{Name: "Basic", Price: intPtr(2000)}, activity.Actor{})
	require.NoError(t, err)

	inq, err := svc.CreateInquiry(&CreateInquiryDTO{
		Name:   "Jordan",
		Email:  "jordan@example.com",
		PlanID: &plan.ID,
	}, activity.Actor{IP: "203.0.113.9"})
	require.NoError(t, err)
	require.Equal(t, models.InquiryStatusNew, inq.Status)

	// Admin listing joins the plan name.
	views, total, err := svc.ListInquiries(pagination.Query{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Basic", views[0].PlanName)

	updated, err := svc.UpdateInquiryStatus(inq.ID, models.InquiryStatusContacted, activity.Actor{})
	require.NoError(t, err)
	require.Equal(t, models.InquiryStatusContacted, updated.Status)

	_, err = svc.UpdateInquiryStatus(inq.ID, "spam", activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)

	require.NoError(t, svc.DeleteInquiry(inq.ID, activity.Actor{}))
	_, err = svc.GetInquiry(inq.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&models.ActivityLogModel{}).
		Where("entity_type = ?", "membership_inquiry").Count(&n).Error)
	require.EqualValues(t, 3, n)
}

func TestInquiryWithoutPlan(t *testing.T) {
	svc, _ := newTestService(t)

	inq, err := svc.CreateInquiry(&CreateInquiryDTO{Name: "Sam", Email: "sam@example.com"}, activity.Actor{})
	require.NoError(t, err)

	view, err := svc.GetInquiry(inq.ID)
	require.NoError(t, err)
	require.Empty(t, view.PlanName)
}
