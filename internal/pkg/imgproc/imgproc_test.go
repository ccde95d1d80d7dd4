package imgproc

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "photo.png")
	img := imaging.New(w, h, color.NRGBA{R: 120, G: 20, B: 20, A: 255})
	require.NoError(t, imaging.Save(img, src))
	return src
}

func TestDerivedPaths(t *testing.T) {
	web, thumb := DerivedPaths("/static/uploads/abc.jpg")
	require.Equal(t, "/static/uploads/abc.webp", web)
	require.Equal(t, "/static/uploads/abc_thumb.webp", thumb)

	web, thumb = DerivedPaths("/static/uploads/noext")
	require.Equal(t, "/static/uploads/noext.webp", web)
	require.Equal(t, "/static/uploads/noext_thumb.webp", thumb)
}

func TestProcessWritesRenditions(t *testing.T) {
	src := writeTestImage(t, 64, 48)

	res, err := Process(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 64, res.Width)
	require.Equal(t, 48, res.Height)
	require.FileExists(t, res.WebPath)
	require.FileExists(t, res.ThumbPath)
}

func TestProcessExpiredContext(t *testing.T) {
	src := writeTestImage(t, 64, 48)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Process(ctx, src)
	require.ErrorIs(t, err, apperr.ErrUpstreamTimeout)
}

func TestProcessMissingSource(t *testing.T) {
	_, err := Process(context.Background(), filepath.Join(t.TempDir(), "absent.jpg"))
	require.Error(t, err)
}
