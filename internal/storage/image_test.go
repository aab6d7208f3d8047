package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	return img
}

func TestProcessImageGeneratesThumbnail(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, testImage(800, 600)))

	full, thumb, err := ProcessImage(&buf)

	assert.NoError(t, err)
	assert.NotEmpty(t, full)
	assert.NotEmpty(t, thumb)

	decoded, err := webp.Decode(bytes.NewReader(thumb))
	assert.NoError(t, err)
	assert.Equal(t, 320, decoded.Bounds().Dx())
	assert.Equal(t, 240, decoded.Bounds().Dy())
}

func TestProcessImageKeepsSmallImagesUnscaled(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, testImage(200, 100)))

	_, thumb, err := ProcessImage(&buf)
	assert.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(thumb))
	assert.NoError(t, err)
	assert.Equal(t, 200, decoded.Bounds().Dx())
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	_, _, err := ProcessImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
