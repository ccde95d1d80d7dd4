package class

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pulsefit/core/internal/database"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/modules/trainer"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (*Service, *trainer.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	recorder := activity.NewRecorder(db, nil)
	return NewService(db, recorder), trainer.NewService(db, recorder)
}

func intPtr(i int) *int { return &i }

func TestGetJoinsTrainer(t *testing.T) {
	classSvc, trainerSvc := newTestServices(t)

	tr, err := trainerSvc.Create(&trainer.CreateTrainerDTO{
		Name:  "Alex Rivera",
		Photo: "/static/uploads/alex.jpg",
	}, activity.Actor{})
	require.NoError(t, err)

	cls, err := classSvc.Create(&CreateClassDTO{
		Name:      "Morning HIIT",
		TrainerID: &tr.ID,
		Schedule:  "Mon/Wed 7am",
	}, activity.Actor{})
	require.NoError(t, err)

	view, err := classSvc.Get(cls.ID, false)
	require.NoError(t, err)
	require.Equal(t, "Alex Rivera", view.TrainerName)
	require.Equal(t, "/static/uploads/alex.jpg", view.TrainerPhoto)
}

func TestDanglingTrainerReferenceSurvives(t *testing.T) {
	classSvc, trainerSvc := newTestServices(t)

	tr, err := trainerSvc.Create(&trainer.CreateTrainerDTO{Name: "Gone Soon"}, activity.Actor{})
	require.NoError(t, err)
	cls, err := classSvc.Create(&CreateClassDTO{Name: "Spin", TrainerID: &tr.ID}, activity.Actor{})
	require.NoError(t, err)

	require.NoError(t, trainerSvc.Delete(tr.ID, activity.Actor{}))

	// The class keeps its trainer_id; the join fields come back empty.
	view, err := classSvc.Get(cls.ID, false)
	require.NoError(t, err)
	require.NotNil(t, view.TrainerID)
	require.Equal(t, tr.ID, *view.TrainerID)
	require.Empty(t, view.TrainerName)
	require.Empty(t, view.TrainerPhoto)
}

func TestClassWithoutTrainer(t *testing.T) {
	classSvc, _ := newTestServices(t)

	cls, err := classSvc.Create(&CreateClassDTO{Name: "Open Gym"}, activity.Actor{})
	require.NoError(t, err)

	view, err := classSvc.Get(cls.ID, false)
	require.NoError(t, err)
	require.Nil(t, view.TrainerID)
	require.Empty(t, view.TrainerName)
}

func TestNegativePriceRejected(t *testing.T) {
	classSvc, _ := newTestServices(t)

	_, err := classSvc.Create(&CreateClassDTO{Name: "Bad", Price: intPtr(-100)}, activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestInactiveClassHiddenFromAnonymous(t *testing.T) {
	classSvc, _ := newTestServices(t)

	cls, err := classSvc.Create(&CreateClassDTO{Name: "Retired"}, activity.Actor{})
	require.NoError(t, err)

	off := false
	_, err = classSvc.Update(cls.ID, &UpdateClassDTO{IsActive: &off}, activity.Actor{})
	require.NoError(t, err)

	_, err = classSvc.Get(cls.ID, false)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, total, err := classSvc.List(pagination.Query{}, true)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}
