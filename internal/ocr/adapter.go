package ocr

import (
	"context"
	"image"

	"github.com/rs/zerolog"

	"facture/internal/logger"
)

// Adapter runs the engine and degrades failures to empty results, so that
// arbitration downstream never sees an error from the recognition boundary.
type Adapter struct {
	engine Engine
	log    zerolog.Logger
}

// NewAdapter creates an adapter around an engine.
func NewAdapter(engine Engine) *Adapter {
	return &Adapter{
		engine: engine,
		log:    logger.WithComponent("ocr-adapter"),
	}
}

// Run recognizes one image variant. An engine failure is logged and
// converted into the empty Result (zero lines, zero confidence); it is
// never propagated to the caller.
func (a *Adapter) Run(ctx context.Context, img image.Image) Result {
	lines, err := a.engine.Recognize(ctx, img)
	if err != nil {
		a.log.Warn().
			Err(err).
			Msg("Recognition failed, substituting empty result")
		return Result{}
	}

	result := NewResult(lines)
	a.log.Debug().
		Int("lines", len(result.Lines)).
		Float64("avg_conf", result.AvgConfidence).
		Msg("Recognition completed")
	return result
}
