// Package models holds the persisted artifact shapes of the pipeline:
// the per-document decision record, the structured block hierarchy, and
// the batch summary. All artifacts are written once as pretty-printed
// UTF-8 JSON and never mutated afterwards.
package models

// Variant identifies which image variant an OCR candidate was run on.
type Variant string

const (
	VariantOriginal Variant = "original"
	VariantEnhanced Variant = "enhanced"
)

// DecisionLine is one recognized line as persisted in a decision record.
// Box is the bounding quadrilateral, four [x,y] corners.
type DecisionLine struct {
	Text       string        `json:"text"`
	Confidence float64       `json:"conf"`
	Box        [4][2]float64 `json:"box"`
}

// Scores carries the raw arbitration scores of both candidates, kept for
// auditability even for the variant that was not chosen.
type Scores struct {
	Original float64 `json:"original"`
	Enhanced float64 `json:"enhanced"`
}

// DecisionRecord is the per-document canonical OCR record: which variant
// won arbitration and the winning recognition payload.
type DecisionRecord struct {
	Chosen        Variant        `json:"chosen"`
	Image         string         `json:"image"`
	AvgConfidence float64        `json:"avg_conf"`
	Total         *string        `json:"total"`
	Lines         []DecisionLine `json:"lines"`
	Score         float64        `json:"score"`
	Scores        Scores         `json:"scores"`
}

// BBox is an axis-aligned rectangle as [left, top, right, bottom].
type BBox [4]float64

// BlockLine is one line within a structured block. LineID is 1-based and
// strictly increasing within its block.
type BlockLine struct {
	LineID     int     `json:"line_id"`
	Text       string  `json:"text"`
	BBox       BBox    `json:"bbox"`
	Confidence float64 `json:"confidence"`
}

// Block is a visually contiguous cluster of lines. BlockID is 1-based and
// follows top-to-bottom visual order; BBox is the union of the member
// lines' boxes.
type Block struct {
	BlockID int         `json:"block_id"`
	BBox    BBox        `json:"bbox"`
	Lines   []BlockLine `json:"lines"`
}

// StructuredMeta summarizes a structured document.
type StructuredMeta struct {
	AvgConfidence float64 `json:"avg_conf"`
	LinesCount    int     `json:"lines_count"`
	BlocksCount   int     `json:"blocks_count"`
	ChosenSource  Variant `json:"chosen_source"`
}

// StructuredDocument is the terminal artifact: the block hierarchy derived
// from the winning recognition result.
type StructuredDocument struct {
	Blocks []Block        `json:"blocks"`
	Meta   StructuredMeta `json:"meta"`
}

// ProcessedEntry is one successful document in the batch summary.
type ProcessedEntry struct {
	File       string  `json:"file"`
	Brightness float64 `json:"brightness"`
	Lines      int     `json:"lines"`
	Confidence float64 `json:"confidence"`
	Total      *string `json:"total"`
}

// FailedEntry is one failed document in the batch summary. Brightness is
// only present for quality-gate rejections.
type FailedEntry struct {
	File       string   `json:"file"`
	Reason     string   `json:"reason"`
	Brightness *float64 `json:"brightness,omitempty"`
}

// BatchSummary aggregates a batch run. The batch exit status is success
// only if Failed is empty.
type BatchSummary struct {
	Processed []ProcessedEntry `json:"processed"`
	Failed    []FailedEntry    `json:"failed"`
	Total     int              `json:"total"`
	InputDir  string           `json:"input_dir"`
	OutputDir string           `json:"output_dir"`
	Timestamp string           `json:"timestamp"`
}
