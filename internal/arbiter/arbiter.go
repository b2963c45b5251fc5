// Package arbiter decides which of two OCR candidates (the unmodified
// scan or the enhanced variant) produced the more trustworthy output.
package arbiter

import (
	"github.com/rs/zerolog"

	"facture/internal/extract"
	"facture/internal/logger"
	"facture/internal/ocr"
	"facture/pkg/models"
)

// Margin is the score advantage the enhanced variant must show over the
// original to be preferred. Enhancement (binarization, denoising) may
// score marginally higher by noise alone; biasing toward the untouched
// original avoids flapping on near-ties.
const Margin = 0.02

// Bonus weights. Confidence dominates the score; detecting a total and
// having substantial line coverage are secondary signals, each capped so
// they cannot overturn a large confidence gap.
const (
	totalBonus    = 0.05
	maxLinesBonus = 0.05
)

// Candidate is one OCR run on one image variant, with its derived score.
// Candidates are ephemeral: they exist only during arbitration of a
// single document.
type Candidate struct {
	Variant  models.Variant
	Result   ocr.Result
	Total    string
	HasTotal bool
	Score    float64
}

// Decision is the arbitration outcome for one document. Both raw scores
// are carried for auditability.
type Decision struct {
	Chosen   models.Variant
	Result   ocr.Result
	Total    string
	HasTotal bool
	Score    float64
	Scores   models.Scores
}

// Arbiter scores candidates and picks a winner.
type Arbiter struct {
	log zerolog.Logger
}

// New creates an arbiter.
func New() *Arbiter {
	return &Arbiter{log: logger.WithComponent("arbiter")}
}

// Score computes a candidate's score:
//
//	avg_confidence + 0.05 if a total was detected + min(lines/100, 0.05)
func Score(result ocr.Result, hasTotal bool) float64 {
	score := result.AvgConfidence
	if hasTotal {
		score += totalBonus
	}
	score += min(float64(len(result.Lines))/100, maxLinesBonus)
	return score
}

// Arbitrate decides between the original and the enhanced recognition
// result. A missing or failed enhanced variant is the empty result, which
// scores at most the bonuses and can never clear the margin, so the
// original always survives. The enhanced variant is chosen only when its
// score beats the original's by more than Margin and it recognized at
// least one line.
func (a *Arbiter) Arbitrate(original, enhanced ocr.Result) Decision {
	orig := a.candidate(models.VariantOriginal, original)
	enh := a.candidate(models.VariantEnhanced, enhanced)

	scores := models.Scores{Original: orig.Score, Enhanced: enh.Score}

	winner := orig
	if enh.Score > orig.Score+Margin && !enh.Result.Empty() {
		winner = enh
	}

	a.log.Info().
		Str("chosen", string(winner.Variant)).
		Float64("score_original", orig.Score).
		Float64("score_enhanced", enh.Score).
		Float64("avg_conf", winner.Result.AvgConfidence).
		Int("lines", len(winner.Result.Lines)).
		Msg("Arbitration completed")

	return Decision{
		Chosen:   winner.Variant,
		Result:   winner.Result,
		Total:    winner.Total,
		HasTotal: winner.HasTotal,
		Score:    winner.Score,
		Scores:   scores,
	}
}

// candidate builds and scores one candidate. Total detection is
// delegated to the field extractor, which is pure and idempotent.
func (a *Arbiter) candidate(variant models.Variant, result ocr.Result) Candidate {
	total, hasTotal := "", false
	if !result.Empty() {
		total, hasTotal = extract.FindTotal(result.FullText)
	}
	score := 0.0
	if !result.Empty() {
		score = Score(result, hasTotal)
	}
	return Candidate{
		Variant:  variant,
		Result:   result,
		Total:    total,
		HasTotal: hasTotal,
		Score:    score,
	}
}
