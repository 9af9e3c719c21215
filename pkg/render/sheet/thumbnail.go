package sheet

import (
	"fmt"
	"image"
	"io"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/render/layout"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// Policy decides what happens when a render cannot be decoded.
type Policy string

const (
	// PolicySkip drops unreadable renders with a warning.
	PolicySkip Policy = "skip"
	// PolicyFail aborts the whole run on the first unreadable render.
	PolicyFail Policy = "fail"
)

// ParsePolicy validates a policy name. Empty selects PolicySkip.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyFail:
		return PolicyFail, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid bad-image policy: %q (must be 'skip' or 'fail')", s)
}

// Thumbnail is a render scaled to the sheet's thumbnail height.
type Thumbnail struct {
	Shot     renders.ShotImage
	Original image.Point // size before scaling
	Image    image.Image
}

// LoadResult holds the loaded thumbnails and the renders that were skipped.
type LoadResult struct {
	Thumbnails []Thumbnail
	Skipped    []renders.ShotImage
}

// LoadThumbnails decodes every shot and scales it to height. Under PolicySkip
// unreadable files are logged and reported in Skipped; under PolicyFail the
// first one aborts with ErrCodeImageDecode. Loading nothing at all is
// ErrCodeNoImages.
func LoadThumbnails(shots []renders.ShotImage, height int, policy Policy, logger *log.Logger) (LoadResult, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if height <= 0 {
		height = layout.DefaultThumbHeight
	}

	var res LoadResult
	for _, s := range shots {
		thumb, err := loadThumbnail(s, height)
		if err != nil {
			if policy == PolicyFail {
				return LoadResult{}, errors.Wrap(errors.ErrCodeImageDecode, err, "load %s", s.Path)
			}
			logger.Warn("skipping unreadable render", "path", s.Path, "err", err)
			res.Skipped = append(res.Skipped, s)
			continue
		}
		res.Thumbnails = append(res.Thumbnails, thumb)
	}

	if len(res.Thumbnails) == 0 {
		return res, errors.New(errors.ErrCodeNoImages, "no readable renders (%d skipped)", len(res.Skipped))
	}
	return res, nil
}

func loadThumbnail(s renders.ShotImage, height int) (Thumbnail, error) {
	img, err := imaging.Open(s.Path)
	if err != nil {
		return Thumbnail{}, err
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return Thumbnail{}, fmt.Errorf("empty image %dx%d", size.X, size.Y)
	}
	w := layout.ScaledWidth(size.X, size.Y, height)
	return Thumbnail{
		Shot:     s,
		Original: size,
		Image:    imaging.Resize(img, w, height, imaging.Lanczos),
	}, nil
}
