package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/flametower/pkg/errors"
)

// supersample is the oversampling factor used before downscaling, which
// smooths the edges of thin rectangles.
const supersample = 2

// maxPixels bounds the rasterised canvas.
const maxPixels = 64 << 20

// ToImage rasterises SVG bytes onto a white canvas at the given scale.
// Text elements are skipped; callers that need labels draw them on the
// returned image.
func ToImage(svg []byte, scale float64) (*image.NRGBA, error) {
	if scale <= 0 || math.IsNaN(scale) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png scale must be positive, got %v", scale)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse svg")
	}

	w := int(math.Ceil(icon.ViewBox.W * scale))
	h := int(math.Ceil(icon.ViewBox.H * scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "svg has an empty viewBox")
	}
	sw, sh := w*supersample, h*supersample
	if sw*sh > maxPixels {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png of %dx%d exceeds the pixel limit", w, h)
	}

	icon.SetTarget(0, 0, float64(sw), float64(sh))
	dst := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(sw, sh, dst, dst.Bounds())
	dasher := rasterx.NewDasher(sw, sh, scanner)
	icon.Draw(dasher, 1.0)

	return imaging.Resize(dst, w, h, imaging.Lanczos), nil
}

// EncodePNG writes img as a compressed PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// ToPNG converts SVG bytes to PNG with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	img, err := ToImage(svg, scale)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}
