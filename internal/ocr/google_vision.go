package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// GoogleVisionEngine implements Engine using Google Cloud Vision's
// document text detection.
type GoogleVisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionEngine creates an engine with credentials from environment.
// It expects either GOOGLE_APPLICATION_CREDENTIALS path or GOOGLE_CREDENTIALS
// JSON in env, falling back to application default credentials.
func NewGoogleVisionEngine(ctx context.Context) (*GoogleVisionEngine, error) {
	const op = "NewGoogleVisionEngine"

	var client *vision.ImageAnnotatorClient
	var err error

	// Check for inline credentials first
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapEngineError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapEngineError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapEngineError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleVisionEngine{client: client}, nil
}

// NewGoogleVisionEngineWithClient creates an engine with an explicit client
// (for testing).
func NewGoogleVisionEngineWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionEngine {
	return &GoogleVisionEngine{client: client}
}

// Recognize runs document text detection on one image and returns the
// recognized lines. Vision reports text as pages > blocks > paragraphs >
// words > symbols; each paragraph becomes one line with its bounding
// quadrilateral and confidence.
func (g *GoogleVisionEngine) Recognize(ctx context.Context, img image.Image) ([]Line, error) {
	const op = "Recognize"

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, WrapEngineError(op, ErrImageEncoding, err.Error())
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: buf.Bytes()},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapEngineError(op, ErrNoResponse, "")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return nil, WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API error: %s", annotation.Error.Message))
	}

	return linesFromAnnotation(annotation), nil
}

// linesFromAnnotation flattens a Vision full-text annotation into lines,
// preserving reading order.
func linesFromAnnotation(resp *visionpb.AnnotateImageResponse) []Line {
	if resp.FullTextAnnotation == nil {
		return nil
	}

	var lines []Line
	for _, page := range resp.FullTextAnnotation.Pages {
		for _, block := range page.Blocks {
			for _, para := range block.Paragraphs {
				text := paragraphText(para)
				if strings.TrimSpace(text) == "" {
					continue
				}
				lines = append(lines, Line{
					Text:       text,
					Confidence: float64(para.Confidence),
					Quad:       quadFromPoly(para.BoundingBox),
				})
			}
		}
	}
	return lines
}

// paragraphText joins a paragraph's symbols, honoring the engine's
// detected word breaks.
func paragraphText(para *visionpb.Paragraph) string {
	var b strings.Builder
	for _, word := range para.Words {
		for _, sym := range word.Symbols {
			b.WriteString(sym.Text)
			if sym.Property == nil || sym.Property.DetectedBreak == nil {
				continue
			}
			switch sym.Property.DetectedBreak.Type {
			case visionpb.TextAnnotation_DetectedBreak_SPACE,
				visionpb.TextAnnotation_DetectedBreak_SURE_SPACE:
				b.WriteString(" ")
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// quadFromPoly converts a Vision bounding polygon to a Quad. Polygons with
// fewer than four vertices repeat the last vertex.
func quadFromPoly(poly *visionpb.BoundingPoly) Quad {
	var q Quad
	if poly == nil || len(poly.Vertices) == 0 {
		return q
	}
	for i := 0; i < 4; i++ {
		v := poly.Vertices[min(i, len(poly.Vertices)-1)]
		q[i] = Point{X: float64(v.X), Y: float64(v.Y)}
	}
	return q
}

// Close closes the underlying Vision client.
func (g *GoogleVisionEngine) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
