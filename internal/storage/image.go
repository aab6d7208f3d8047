package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	webpQuality    = 85
	thumbnailWidth = 320
)

// ProcessImage decodifica a imagem enviada e devolve a versão cheia e a
// miniatura, ambas em webp.
func ProcessImage(r io.Reader) (full []byte, thumb []byte, err error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}

	full, err = encodeWebp(src)
	if err != nil {
		return nil, nil, err
	}

	thumb, err = encodeWebp(resizeToWidth(src, thumbnailWidth))
	if err != nil {
		return nil, nil, err
	}

	return full, thumb, nil
}

func encodeWebp(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeToWidth reduz a imagem mantendo a proporção; imagens já menores
// passam direto.
func resizeToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() <= width {
		return src
	}

	height := b.Dy() * width / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
