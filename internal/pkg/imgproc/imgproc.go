// Package imgproc derives web renditions from uploaded images: a
// resized webp copy and a thumbnail, written next to the original.
package imgproc

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pulsefit/core/internal/pkg/apperr"
)

const (
	maxWebWidth = 1920
	thumbSize   = 480
	webpQuality = 82

	// DefaultTimeout bounds a single image pipeline run.
	DefaultTimeout = 30 * time.Second
)

// Result describes the derived artifacts of one processed image.
type Result struct {
	Width     int
	Height    int
	WebPath   string
	ThumbPath string
}

// DerivedPaths returns the rendition paths that Process would produce
// for a stored original, whether or not they exist on disk.
func DerivedPaths(storedPath string) (webPath, thumbPath string) {
	base := strings.TrimSuffix(storedPath, filepath.Ext(storedPath))
	return base + ".webp", base + "_thumb.webp"
}

// Process decodes the original at srcPath and writes the webp rendition
// and thumbnail alongside it. The run is bounded by ctx; on expiry the
// caller gets apperr.ErrUpstreamTimeout and any partial output is removed.
func Process(ctx context.Context, srcPath string) (*Result, error) {
	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		res, err := run(srcPath)
		done <- outcome{res, err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		webPath, thumbPath := DerivedPaths(srcPath)
		_ = os.Remove(webPath)
		_ = os.Remove(thumbPath)
		return nil, apperr.ErrUpstreamTimeout
	}
}

func run(srcPath string) (*Result, error) {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	res := &Result{Width: bounds.Dx(), Height: bounds.Dy()}

	web := img
	if bounds.Dx() > maxWebWidth {
		web = imaging.Resize(img, maxWebWidth, 0, imaging.Lanczos)
	}
	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)

	webPath, thumbPath := DerivedPaths(srcPath)
	if err := saveWebP(web, webPath); err != nil {
		return nil, err
	}
	if err := saveWebP(thumb, thumbPath); err != nil {
		_ = os.Remove(webPath)
		return nil, err
	}

	res.WebPath = webPath
	res.ThumbPath = thumbPath
	return res, nil
}

func saveWebP(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return webp.Encode(f, img, &webp.Options{Lossless: false, Quality: webpQuality})
}
