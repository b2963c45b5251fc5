// Package quality assesses whether a scanned image is usable at all
// before OCR is attempted. The check is deliberately permissive: only
// completely black or completely white scans are rejected, everything
// else is left to the OCR engine and arbitration to sort out.
package quality

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Brightness thresholds on the grayscale mean in [0,255].
const (
	minBrightness = 5
	maxBrightness = 254
)

// Report is the outcome of one quality assessment.
type Report struct {
	IsAcceptable bool
	Brightness   float64
	Message      string
}

// Assess computes the mean brightness of the image and rejects only the
// extremes. Brightness is rounded to one decimal for reporting.
func Assess(img image.Image) Report {
	brightness := meanBrightness(img)
	rounded := math.Round(brightness*10) / 10

	switch {
	case brightness < minBrightness:
		return Report{IsAcceptable: false, Brightness: rounded, Message: "image completely black"}
	case brightness > maxBrightness:
		return Report{IsAcceptable: false, Brightness: rounded, Message: "image completely white"}
	default:
		return Report{IsAcceptable: true, Brightness: rounded, Message: "OK"}
	}
}

// meanBrightness averages the gray channel over all pixels. The image is
// grayscaled first; imaging produces NRGBA with R=G=B, so the red channel
// is a sufficient brightness proxy.
func meanBrightness(img image.Image) float64 {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var sum uint64
	for i := 0; i < len(gray.Pix); i += 4 {
		sum += uint64(gray.Pix[i])
	}
	return float64(sum) / float64(pixels)
}
