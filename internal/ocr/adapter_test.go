package ocr

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"
)

type fakeEngine struct {
	lines []Line
	err   error
}

func (f *fakeEngine) Recognize(_ context.Context, _ image.Image) ([]Line, error) {
	return f.lines, f.err
}

func testImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 4, 4))
}

func TestAdapterRun(t *testing.T) {
	engine := &fakeEngine{lines: []Line{
		{Text: "Facture", Confidence: 0.8},
		{Text: "Total 10,00", Confidence: 0.6},
	}}

	result := NewAdapter(engine).Run(context.Background(), testImage())

	if result.Empty() {
		t.Fatal("result is empty")
	}
	if math.Abs(result.AvgConfidence-0.7) > 1e-9 {
		t.Errorf("AvgConfidence = %v, want 0.7", result.AvgConfidence)
	}
	if result.FullText != "Facture\nTotal 10,00" {
		t.Errorf("FullText = %q", result.FullText)
	}
}

func TestAdapterRunEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("rpc unavailable")}

	result := NewAdapter(engine).Run(context.Background(), testImage())

	if !result.Empty() {
		t.Errorf("result not empty after engine failure: %+v", result)
	}
	if result.AvgConfidence != 0 {
		t.Errorf("AvgConfidence = %v, want 0", result.AvgConfidence)
	}
}

func TestNewResultEmpty(t *testing.T) {
	r := NewResult(nil)
	if !r.Empty() || r.AvgConfidence != 0 || r.FullText != "" {
		t.Errorf("NewResult(nil) = %+v, want zero result", r)
	}
}

func TestQuadExtents(t *testing.T) {
	q := Quad{
		{X: 10, Y: 5},
		{X: 90, Y: 4},
		{X: 92, Y: 30},
		{X: 11, Y: 31},
	}

	if got := q.Top(); got != 4 {
		t.Errorf("Top() = %v, want 4", got)
	}
	if got := q.Bottom(); got != 31 {
		t.Errorf("Bottom() = %v, want 31", got)
	}
	if got := q.Left(); got != 10 {
		t.Errorf("Left() = %v, want 10", got)
	}
	if got := q.Right(); got != 92 {
		t.Errorf("Right() = %v, want 92", got)
	}
}
