// Package pipeline composes the per-document processing chain: quality
// gate → enhancement → OCR on both variants → arbitration → field
// normalization → spatial structuring → persisted JSON artifacts.
//
// Documents are independent; failures are always localized to a single
// document and recorded in the batch summary, never fatal to the batch.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"facture/internal/arbiter"
	"facture/internal/enhance"
	"facture/internal/logger"
	"facture/internal/normalize"
	"facture/internal/ocr"
	"facture/internal/quality"
	"facture/internal/structure"
	"facture/pkg/models"
)

// Pipeline processes scanned invoice images into decision and structured
// records. The OCR engine is injected once at construction; the pipeline
// itself holds no per-document state and is safe for concurrent use.
type Pipeline struct {
	adapter *ocr.Adapter
	arbiter *arbiter.Arbiter
	yGap    int
	log     zerolog.Logger
}

// New creates a pipeline around an OCR engine. yGap is the vertical gap
// threshold for block structuring; zero or negative falls back to the
// default.
func New(engine ocr.Engine, yGap int) *Pipeline {
	if yGap <= 0 {
		yGap = structure.DefaultYGap
	}
	return &Pipeline{
		adapter: ocr.NewAdapter(engine),
		arbiter: arbiter.New(),
		yGap:    yGap,
		log:     logger.WithComponent("pipeline"),
	}
}

// DocumentError reports why a single document could not be processed.
// Brightness is set for quality-gate rejections.
type DocumentError struct {
	Reason     string
	Brightness *float64
}

func (e *DocumentError) Error() string {
	return e.Reason
}

// ProcessDocument runs one image end-to-end and writes the decision and
// structured JSON artifacts next to outputDir. The returned entry feeds
// the batch summary. OCR engine failures do not error out the document;
// they degrade to empty results and arbitration picks the survivor.
func (p *Pipeline) ProcessDocument(ctx context.Context, imagePath, outputDir string) (models.ProcessedEntry, error) {
	name := filepath.Base(imagePath)
	log := p.log.With().Str("file", name).Logger()

	img, err := imaging.Open(imagePath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load image")
		return models.ProcessedEntry{}, &DocumentError{Reason: fmt.Sprintf("failed to load image: %v", err)}
	}

	report := quality.Assess(img)
	if !report.IsAcceptable {
		log.Error().
			Float64("brightness", report.Brightness).
			Str("reason", report.Message).
			Msg("Quality check failed")
		b := report.Brightness
		return models.ProcessedEntry{}, &DocumentError{Reason: report.Message, Brightness: &b}
	}
	log.Info().Float64("brightness", report.Brightness).Msg("Quality check passed")

	enhanced := enhance.Enhance(img)

	original := p.adapter.Run(ctx, img)
	enhancedResult := p.adapter.Run(ctx, enhanced)

	decision := p.arbiter.Arbitrate(original, enhancedResult)
	p.logExtraction(log, decision)

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	decisionPath := filepath.Join(outputDir, stem+"_decision.json")
	if err := writeJSON(decisionPath, decisionRecord(name, decision)); err != nil {
		log.Error().Err(err).Str("path", decisionPath).Msg("Failed to write decision record")
		return models.ProcessedEntry{}, &DocumentError{Reason: fmt.Sprintf("failed to write decision record: %v", err)}
	}

	structured := structuredDocument(decision, p.yGap)
	structuredPath := filepath.Join(outputDir, stem+"_structured.json")
	if err := writeJSON(structuredPath, structured); err != nil {
		log.Error().Err(err).Str("path", structuredPath).Msg("Failed to write structured record")
		return models.ProcessedEntry{}, &DocumentError{Reason: fmt.Sprintf("failed to write structured record: %v", err)}
	}

	log.Info().
		Str("chosen", string(decision.Chosen)).
		Int("lines", len(decision.Result.Lines)).
		Int("blocks", structured.Meta.BlocksCount).
		Msg("Document processed")

	entry := models.ProcessedEntry{
		File:       name,
		Brightness: report.Brightness,
		Lines:      len(decision.Result.Lines),
		Confidence: decision.Result.AvgConfidence,
	}
	if decision.HasTotal {
		total := decision.Total
		entry.Total = &total
	}
	return entry, nil
}

// logExtraction normalizes the extracted fields for observability: the
// detected language selects the term dictionary, the total is validated
// as a non-negative amount, and the currency is read off the full text.
func (p *Pipeline) logExtraction(log zerolog.Logger, decision arbiter.Decision) {
	lang := normalize.DetectLanguage(decision.Result.FullText)
	currency := normalize.Currency(decision.Result.FullText)

	ev := log.Info().
		Str("language", string(lang)).
		Str("currency", string(currency))

	if decision.HasTotal {
		if v, ok := normalize.Amount(decision.Total); ok && v >= 0 {
			ev = ev.Str("total", decision.Total).Float64("total_value", v)
		} else {
			log.Warn().Str("total", decision.Total).Msg("Detected total does not normalize to a non-negative amount")
		}
	}
	ev.Msg("Fields extracted")
}

// decisionRecord converts an arbitration decision into its persisted form.
func decisionRecord(imageName string, d arbiter.Decision) models.DecisionRecord {
	lines := make([]models.DecisionLine, len(d.Result.Lines))
	for i, ln := range d.Result.Lines {
		var box [4][2]float64
		for j, pt := range ln.Quad {
			box[j] = [2]float64{pt.X, pt.Y}
		}
		lines[i] = models.DecisionLine{
			Text:       ln.Text,
			Confidence: ln.Confidence,
			Box:        box,
		}
	}

	record := models.DecisionRecord{
		Chosen:        d.Chosen,
		Image:         imageName,
		AvgConfidence: d.Result.AvgConfidence,
		Lines:         lines,
		Score:         d.Score,
		Scores:        d.Scores,
	}
	if d.HasTotal {
		total := d.Total
		record.Total = &total
	}
	return record
}

// structuredDocument derives the block hierarchy from a decision.
func structuredDocument(d arbiter.Decision, yGap int) models.StructuredDocument {
	blocks := structure.GroupIntoBlocks(d.Result.Lines, yGap)
	if blocks == nil {
		blocks = []models.Block{}
	}
	return models.StructuredDocument{
		Blocks: blocks,
		Meta: models.StructuredMeta{
			AvgConfidence: d.Result.AvgConfidence,
			LinesCount:    len(d.Result.Lines),
			BlocksCount:   len(blocks),
			ChosenSource:  d.Chosen,
		},
	}
}

// writeJSON persists an artifact as pretty-printed UTF-8 JSON with
// 2-space indentation. Artifacts are write-once per document.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
