package quality

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func uniform(c color.NRGBA) image.Image {
	return imaging.New(16, 16, c)
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name       string
		img        image.Image
		acceptable bool
		message    string
	}{
		{"black scan rejected", uniform(color.NRGBA{0, 0, 0, 255}), false, "image completely black"},
		{"white scan rejected", uniform(color.NRGBA{255, 255, 255, 255}), false, "image completely white"},
		{"mid gray accepted", uniform(color.NRGBA{128, 128, 128, 255}), true, "OK"},
		{"dark but readable accepted", uniform(color.NRGBA{30, 30, 30, 255}), true, "OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Assess(tt.img)
			if report.IsAcceptable != tt.acceptable {
				t.Errorf("IsAcceptable = %v, want %v (brightness %v)",
					report.IsAcceptable, tt.acceptable, report.Brightness)
			}
			if report.Message != tt.message {
				t.Errorf("Message = %q, want %q", report.Message, tt.message)
			}
		})
	}
}

func TestAssessBrightnessValue(t *testing.T) {
	report := Assess(uniform(color.NRGBA{128, 128, 128, 255}))

	if report.Brightness != 128 {
		t.Errorf("Brightness = %v, want 128", report.Brightness)
	}
}

func TestAssessMixedContent(t *testing.T) {
	// Half black, half white: mean sits comfortably inside the window.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(0)
			if y >= 8 {
				v = 255
			}
			img.Set(x, y, color.NRGBA{v, v, v, 255})
		}
	}

	report := Assess(img)
	if !report.IsAcceptable {
		t.Errorf("mixed image rejected: %+v", report)
	}
	if report.Brightness < 120 || report.Brightness > 135 {
		t.Errorf("Brightness = %v, want near 127.5", report.Brightness)
	}
}
