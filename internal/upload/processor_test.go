// AngelaMos | 2026
// processor_test.go

package upload

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func gifBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.White, color.Black})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))
	return buf.Bytes()
}

// pngHeader builds a PNG that holds only an IHDR chunk declaring w x h, the
// shape of a tiny file that would expand to a huge bitmap when decoded.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8
	ihdr[9] = 6

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcessRejectsHugeDimensionsBeforeDecode(t *testing.T) {
	p := NewProcessor(allowedTypes, 2048)

	_, err := p.Process(pngHeader(12000, 12000))
	assert.ErrorIs(t, err, ErrTooManyPixels)
	assert.NotErrorIs(t, err, ErrUnsupportedType)

	_, err = p.Process(pngHeader(8000, 5001))
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestProcessAcceptsDimensionsAtPixelCap(t *testing.T) {
	p := NewProcessor(allowedTypes, 2048)

	// The header passes the pixel check, so failure comes from the missing
	// image data during the full decode.
	_, err := p.Process(pngHeader(8000, 5000))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.NotErrorIs(t, err, ErrTooManyPixels)
}

func TestProcessKeepsSmallPNG(t *testing.T) {
	data := pngBytes(t, 16, 8)

	img, err := NewProcessor(allowedTypes, 1024).Process(data)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Ext)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 8, img.Height)
	assert.Equal(t, data, img.Data)
}

func TestProcessShrinksLargeImages(t *testing.T) {
	img, err := NewProcessor(allowedTypes, 32).Process(pngBytes(t, 128, 64))
	require.NoError(t, err)

	assert.Equal(t, 32, img.Width)
	assert.Equal(t, 16, img.Height)
	assert.Equal(t, "image/png", img.ContentType)

	decoded, err := png.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, 32, decoded.Bounds().Dx())
}

func TestProcessKeepsGIF(t *testing.T) {
	data := gifBytes(t)

	img, err := NewProcessor(allowedTypes, 2).Process(data)
	require.NoError(t, err)
	assert.Equal(t, ".gif", img.Ext)
	assert.Equal(t, data, img.Data)
}

func TestProcessRejectsNonImages(t *testing.T) {
	p := NewProcessor(allowedTypes, 1024)

	_, err := p.Process([]byte("just some text pretending to be a picture"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = p.Process([]byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestProcessRejectsDisallowedType(t *testing.T) {
	p := NewProcessor([]string{"image/jpeg"}, 1024)

	_, err := p.Process(pngBytes(t, 4, 4))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestAllows(t *testing.T) {
	p := NewProcessor([]string{"image/png", "image/svg+xml"}, 0)

	assert.True(t, p.Allows("image/png"))
	assert.False(t, p.Allows("image/jpeg"))
	assert.False(t, p.Allows("image/svg+xml"))
	assert.False(t, p.Allows(""))
}
