// Package bitmap describes decoded image payloads as stored by the cache.
// Decoding itself happens elsewhere; this package only knows how big a
// decoded image is.
package bitmap

import "fmt"

// Config is the in-memory pixel format of a decoded image.
type Config uint8

const (
	// ARGB8888 stores each pixel on 4 bytes. It is the zero value and the
	// format decoders fall back to.
	ARGB8888 Config = iota
	// Alpha8 stores only an alpha channel, 1 byte per pixel.
	Alpha8
	// RGB565 stores opaque pixels on 2 bytes.
	RGB565
	// ARGB4444 stores pixels on 2 bytes with reduced precision.
	ARGB4444
	// RGBAF16 stores each channel as a half float, 8 bytes per pixel.
	RGBAF16
)

// BytesPerPixel returns the storage cost of a single pixel.
func (c Config) BytesPerPixel() int {
	switch c {
	case Alpha8:
		return 1
	case RGB565, ARGB4444:
		return 2
	case RGBAF16:
		return 8
	default:
		return 4
	}
}

func (c Config) String() string {
	switch c {
	case Alpha8:
		return "ALPHA_8"
	case RGB565:
		return "RGB_565"
	case ARGB4444:
		return "ARGB_4444"
	case RGBAF16:
		return "RGBA_F16"
	case ARGB8888:
		return "ARGB_8888"
	default:
		return fmt.Sprintf("Config(%d)", uint8(c))
	}
}

// Bitmap is a decoded image. Pix may be nil when a caller only tracks
// dimensions (e.g. pixels live in a GPU texture); the size reported by
// Bytes does not depend on it.
type Bitmap struct {
	Width  int
	Height int
	Config Config
	Pix    []byte
}

// New allocates a zeroed bitmap of the given dimensions.
func New(width, height int, cfg Config) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Config: cfg,
		Pix:    make([]byte, width*height*cfg.BytesPerPixel()),
	}
}

// Bytes is the sizing function used by the cache for bitmaps:
// bytes-per-pixel × width × height. A nil bitmap weighs nothing.
func Bytes(b *Bitmap) int64 {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return int64(b.Config.BytesPerPixel()) * int64(b.Width) * int64(b.Height)
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap{%dx%d %s}", b.Width, b.Height, b.Config)
}
