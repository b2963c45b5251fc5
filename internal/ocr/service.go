// Package ocr wraps the external OCR engine behind a small interface
// and converts its raw output into a uniform recognition result.
//
// The production engine is Google Cloud Vision's document text detection.
// The engine is an injected collaborator: the host application constructs
// it once and passes it into the pipeline, so tests can substitute a fake.
//
// Required Environment Variables (for the Google Vision engine):
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//
// Engine failures never escape the adapter: a failed recognition call is
// degraded to an empty result with zero confidence, so candidate
// arbitration can still pick the surviving variant.
package ocr

import (
	"context"
	"image"
	"strings"
)

// Point is a single corner of a recognized line's bounding region.
type Point struct {
	X float64
	Y float64
}

// Quad is the bounding quadrilateral of a recognized line, four corners
// in the engine's order (typically top-left, top-right, bottom-right,
// bottom-left).
type Quad [4]Point

// Top returns the smallest Y coordinate of the quad.
func (q Quad) Top() float64 {
	min := q[0].Y
	for _, p := range q[1:] {
		if p.Y < min {
			min = p.Y
		}
	}
	return min
}

// Bottom returns the largest Y coordinate of the quad.
func (q Quad) Bottom() float64 {
	max := q[0].Y
	for _, p := range q[1:] {
		if p.Y > max {
			max = p.Y
		}
	}
	return max
}

// Left returns the smallest X coordinate of the quad.
func (q Quad) Left() float64 {
	min := q[0].X
	for _, p := range q[1:] {
		if p.X < min {
			min = p.X
		}
	}
	return min
}

// Right returns the largest X coordinate of the quad.
func (q Quad) Right() float64 {
	max := q[0].X
	for _, p := range q[1:] {
		if p.X > max {
			max = p.X
		}
	}
	return max
}

// Line is one recognized text line. Immutable once created.
type Line struct {
	// Text is the recognized content of the line.
	Text string

	// Confidence is the engine's confidence for this line, in [0,1].
	Confidence float64

	// Quad is the line's bounding quadrilateral in image coordinates.
	Quad Quad
}

// Result is the uniform output of one OCR run on one image variant.
//
// AvgConfidence is the arithmetic mean of per-line confidences, 0.0 when
// there are no lines. FullText is the line texts joined by newlines,
// preserving engine order. A Result is owned by the arbitration call that
// produced it and never mutated.
type Result struct {
	Lines         []Line
	AvgConfidence float64
	FullText      string
}

// Empty reports whether the result carries no recognized lines.
func (r Result) Empty() bool {
	return len(r.Lines) == 0
}

// NewResult builds a Result from recognized lines, computing the average
// confidence and the newline-joined full text.
func NewResult(lines []Line) Result {
	if len(lines) == 0 {
		return Result{}
	}

	texts := make([]string, len(lines))
	var sum float64
	for i, ln := range lines {
		texts[i] = ln.Text
		sum += ln.Confidence
	}

	return Result{
		Lines:         lines,
		AvgConfidence: sum / float64(len(lines)),
		FullText:      strings.Join(texts, "\n"),
	}
}

// Engine is the external OCR engine boundary. Implementations may block
// on network calls and may fail; callers go through Adapter, which
// converts failures into empty results.
type Engine interface {
	// Recognize runs text recognition on one image and returns the
	// recognized lines in reading order.
	Recognize(ctx context.Context, img image.Image) ([]Line, error)
}
