package enhance

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// textSample paints horizontal dark bands on white, a crude stand-in for
// printed text lines.
func textSample() image.Image {
	img := imaging.New(120, 80, color.NRGBA{255, 255, 255, 255})
	for _, band := range []int{10, 30, 50} {
		for y := band; y < band+6; y++ {
			for x := 10; x < 110; x++ {
				img.Set(x, y, color.NRGBA{20, 20, 20, 255})
			}
		}
	}
	return img
}

func TestBinarize(t *testing.T) {
	img := imaging.New(4, 1, color.NRGBA{100, 100, 100, 255})
	img.Set(2, 0, color.NRGBA{200, 200, 200, 255})
	img.Set(3, 0, color.NRGBA{180, 180, 180, 255})

	out := Binarize(img, 180)

	wants := []uint8{0, 0, 255, 255} // >= threshold goes white
	for x, want := range wants {
		if got := out.NRGBAAt(x, 0).R; got != want {
			t.Errorf("pixel %d = %d, want %d", x, got, want)
		}
	}
}

func TestBinarizeTwoLevelOutput(t *testing.T) {
	out := Binarize(imaging.Grayscale(textSample()), 180)

	for i := 0; i < len(out.Pix); i += 4 {
		if v := out.Pix[i]; v != 0 && v != 255 {
			t.Fatalf("pixel value %d is neither 0 nor 255", v)
		}
	}
}

func TestEnhanceDeterministic(t *testing.T) {
	src := textSample()

	a := imaging.Clone(Enhance(src))
	b := imaging.Clone(Enhance(src))

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two Enhance runs on the same image differ")
	}
}

func TestEnhanceDoesNotModifyInput(t *testing.T) {
	src := imaging.Clone(textSample())
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	Enhance(src)

	if !bytes.Equal(before, src.Pix) {
		t.Error("Enhance mutated its input image")
	}
}

func TestDeskewAlignedImageUnchangedSize(t *testing.T) {
	binary := Binarize(imaging.Grayscale(textSample()), 180)

	out := Deskew(binary)

	// Aligned horizontal bands already maximize row variance, so the best
	// angle is 0 and the output keeps the input dimensions.
	if out.Bounds().Dx() != binary.Bounds().Dx() || out.Bounds().Dy() != binary.Bounds().Dy() {
		t.Errorf("deskew of aligned image changed size: %v -> %v",
			binary.Bounds(), out.Bounds())
	}
}

func TestDenoiseStaysTwoLevel(t *testing.T) {
	binary := Binarize(imaging.Grayscale(textSample()), 180)

	out := Denoise(binary)

	for i := 0; i < len(out.Pix); i += 4 {
		if v := out.Pix[i]; v != 0 && v != 255 {
			t.Fatalf("pixel value %d after denoise is neither 0 nor 255", v)
		}
	}
}
