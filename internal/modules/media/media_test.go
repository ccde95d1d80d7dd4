package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
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
	return NewService(db, activity.NewRecorder(db, nil), t.TempDir()), db
}

func fileHeader(name, mime string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{mime}},
	}
}

func writeTo(content string) func(*multipart.FileHeader, string) error {
	return func(_ *multipart.FileHeader, dst string) error {
		return os.WriteFile(dst, []byte(content), 0o644)
	}
}

func TestUploadRejectsEmptyBatch(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Upload(context.Background(), nil, writeTo("x"), activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	svc, _ := newTestService(t)

	files := make([]*multipart.FileHeader, maxFilesPerUpload+1)
	for i := range files {
		files[i] = fileHeader(fmt.Sprintf("f%d.txt", i), "text/plain", 10)
	}
	_, err := svc.Upload(context.Background(), files, writeTo("x"), activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestService(t)

	files := []*multipart.FileHeader{fileHeader("huge.txt", "text/plain", maxFileSize+1)}
	_, err := svc.Upload(context.Background(), files, writeTo("x"), activity.Actor{})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUploadStoresNonImageFile(t *testing.T) {
	svc, db := newTestService(t)

	files := []*multipart.FileHeader{fileHeader("schedule.pdf", "application/pdf", 42)}
	stored, err := svc.Upload(context.Background(), files, writeTo("pdf bytes"), activity.Actor{})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	m := stored[0]
	require.Equal(t, "schedule.pdf", m.OriginalName)
	require.Equal(t, ".pdf", filepath.Ext(m.Filename))
	require.NotEqual(t, m.OriginalName, m.Filename)
	require.FileExists(t, m.StoredPath)

	var n int64
	require.NoError(t, db.Model(&models.MediaModel{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestGeneratedFilenamesAreUnique(t *testing.T) {
	svc, _ := newTestService(t)

	files := []*multipart.FileHeader{
		fileHeader("same.txt", "text/plain", 1),
		fileHeader("same.txt", "text/plain", 1),
	}
	stored, err := svc.Upload(context.Background(), files, writeTo("x"), activity.Actor{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.NotEqual(t, stored[0].Filename, stored[1].Filename)
}

func TestListFiltersByTypePrefix(t *testing.T) {
	svc, db := newTestService(t)

	rows := []models.MediaModel{
		{Filename: "a.webp", StoredPath: "/tmp/a.webp", MimeType: "image/webp"},
		{Filename: "b.pdf", StoredPath: "/tmp/b.pdf", MimeType: "application/pdf"},
	}
	require.NoError(t, db.Create(&rows).Error)

	images, total, err := svc.List("image", pagination.Query{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "a.webp", images[0].Filename)

	_, total, err = svc.List("", pagination.Query{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}

func TestDeleteIgnoresMissingArtifacts(t *testing.T) {
	svc, db := newTestService(t)

	row := models.MediaModel{
		Filename:   "gone.jpg",
		StoredPath: filepath.Join(t.TempDir(), "gone.jpg"),
		MimeType:   "image/jpeg",
	}
	require.NoError(t, db.Create(&row).Error)

	// No file was ever written; row deletion still succeeds.
	require.NoError(t, svc.Delete(row.ID, activity.Actor{}))

	_, err := svc.Get(row.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateAltText(t *testing.T) {
	svc, db := newTestService(t)

	row := models.MediaModel{Filename: "x.png", StoredPath: "/tmp/x.png", MimeType: "image/png"}
	require.NoError(t, db.Create(&row).Error)

	alt := "front desk"
	updated, err := svc.Update(row.ID, &UpdateMediaDTO{AltText: &alt}, activity.Actor{})
	require.NoError(t, err)
	require.Equal(t, "front desk", updated.AltText)
	require.Equal(t, "x.png", updated.Filename)
}
