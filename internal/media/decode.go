package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/julianstephens/fivemin/internal/constants"
)

var ErrInvalidMedia = errors.New("unrecognized image data")

// Info describes a decoded animation.
type Info struct {
	Frames int
	Loop   time.Duration
	Width  int
	Height int
}

// Decode inspects data as an animated GIF. Frames with no delay count as
// the default frame gap. Other still image formats decode as a single frame;
// a GIF that fails to decode fully is rejected.
func Decode(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrInvalidMedia
	}

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err == nil && len(anim.Image) > 0 {
		info := Info{
			Frames: len(anim.Image),
			Width:  anim.Config.Width,
			Height: anim.Config.Height,
		}
		for i := range anim.Image {
			gap := constants.MediaDefaultFrameGap
			if i < len(anim.Delay) && anim.Delay[i] > 0 {
				gap = time.Duration(anim.Delay[i]) * 10 * time.Millisecond
			}
			info.Loop += gap
		}
		if info.Width == 0 {
			b := anim.Image[0].Bounds()
			info.Width, info.Height = b.Dx(), b.Dy()
		}
		return info, nil
	}

	cfg, format, cerr := image.DecodeConfig(bytes.NewReader(data))
	if cerr != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidMedia, cerr)
	}
	if format == "gif" {
		if err == nil {
			err = errors.New("gif has no frames")
		}
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	return Info{Frames: 1, Width: cfg.Width, Height: cfg.Height}, nil
}
