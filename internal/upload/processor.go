// AngelaMos | 2026
// processor.go

package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrMissingFile     = errors.New("file is required")
	ErrTooManyPixels   = errors.New("image dimensions too large")
)

const (
	jpegQuality = 90

	// MaxPixels caps width*height read from the image header before the
	// full decode allocates a buffer for it.
	MaxPixels = 40_000_000
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is an upload that passed content checks and is ready to store.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

type Processor struct {
	allowed      []string
	maxDimension int
}

func NewProcessor(allowed []string, maxDimension int) *Processor {
	return &Processor{
		allowed:      allowed,
		maxDimension: maxDimension,
	}
}

// Allows reports whether a declared or sniffed content type is accepted.
func (p *Processor) Allows(contentType string) bool {
	if _, known := extensions[contentType]; !known {
		return false
	}
	return slices.Contains(p.allowed, contentType)
}

// Process sniffs data and checks the header dimensions against MaxPixels.
// It then decodes the image to prove it is real, applies the EXIF orientation
// of JPEGs and shrinks anything larger than the configured dimension. GIFs
// are stored untouched to keep animation.
func (p *Processor) Process(data []byte) (*Image, error) {
	contentType := mimetype.Detect(data).String()
	if !p.Allows(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode config: %v", ErrUnsupportedType, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 ||
		int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnsupportedType, err)
	}

	out := &Image{
		Data:        data,
		ContentType: contentType,
		Ext:         extensions[contentType],
	}

	if contentType == "image/gif" {
		bounds := img.Bounds()
		out.Width, out.Height = bounds.Dx(), bounds.Dy()
		return out, nil
	}

	changed := false
	if contentType == "image/jpeg" {
		if o := exifOrientation(data); o != 1 {
			img = applyOrientation(img, o)
			changed = true
		}
	}

	bounds := img.Bounds()
	if p.maxDimension > 0 &&
		(bounds.Dx() > p.maxDimension || bounds.Dy() > p.maxDimension) {
		img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
		changed = true
	}

	bounds = img.Bounds()
	out.Width, out.Height = bounds.Dx(), bounds.Dy()

	if !changed {
		return out, nil
	}

	encoded, contentType, err := encode(img, contentType)
	if err != nil {
		return nil, err
	}
	out.Data = encoded
	out.ContentType = contentType
	out.Ext = extensions[contentType]

	return out, nil
}

// encode writes img back in its original format. WebP has no pure Go
// encoder, so it is re-encoded as JPEG.
func encode(img image.Image, contentType string) ([]byte, string, error) {
	var buf bytes.Buffer
	var err error

	switch contentType {
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/gif":
		err = gif.Encode(&buf, img, nil)
	default:
		contentType = "image/jpeg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), contentType, nil
}

func exifOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
