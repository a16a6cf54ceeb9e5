// Package qr renders vehicle check-in QR labels as PNG images.
package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// Size bounds for rendered labels, in pixels.
const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

// PNG encodes url as a QR code and renders it at the requested pixel size.
// A size of 0 selects DefaultSize.
func PNG(url string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("size must be between %d and %d pixels", MinSize, MaxSize)
	}

	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}

	// Render at one pixel per module, then upscale. Nearest-neighbour keeps
	// the module edges sharp; smooth interpolation would blur them and break
	// scanning.
	base := code.Image(-1)
	scaled := upscale(base, size)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// upscale resizes the module matrix to a square of the given side length.
func upscale(img image.Image, side int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
