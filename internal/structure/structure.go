// Package structure converts a flat list of recognized lines into a
// hierarchy of visual blocks, grouped by vertical proximity.
package structure

import (
	"sort"

	"facture/internal/ocr"
	"facture/pkg/models"
)

// DefaultYGap is the vertical gap, in pixels, at which a new block opens.
const DefaultYGap = 40

// GroupIntoBlocks sorts lines by the top of their bounding quad and walks
// them once, keeping a line in the open block while the gap between its
// top and the previous line's bottom stays strictly below yGap. Each
// block's bbox is the coordinate-wise union of its members' boxes; block
// and line IDs are 1-based in visual order. An empty line list yields
// zero blocks.
func GroupIntoBlocks(lines []ocr.Line, yGap int) []models.Block {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]ocr.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quad.Top() < sorted[j].Quad.Top()
	})

	var groups [][]ocr.Line
	current := []ocr.Line{sorted[0]}
	for _, ln := range sorted[1:] {
		prev := current[len(current)-1]
		gap := ln.Quad.Top() - prev.Quad.Bottom()
		if gap < float64(yGap) {
			current = append(current, ln)
		} else {
			groups = append(groups, current)
			current = []ocr.Line{ln}
		}
	}
	groups = append(groups, current)

	blocks := make([]models.Block, 0, len(groups))
	for i, group := range groups {
		block := models.Block{
			BlockID: i + 1,
			BBox:    unionBBox(group),
			Lines:   make([]models.BlockLine, 0, len(group)),
		}
		for j, ln := range group {
			block.Lines = append(block.Lines, models.BlockLine{
				LineID:     j + 1,
				Text:       ln.Text,
				BBox:       lineBBox(ln),
				Confidence: ln.Confidence,
			})
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func lineBBox(ln ocr.Line) models.BBox {
	return models.BBox{ln.Quad.Left(), ln.Quad.Top(), ln.Quad.Right(), ln.Quad.Bottom()}
}

func unionBBox(group []ocr.Line) models.BBox {
	bbox := lineBBox(group[0])
	for _, ln := range group[1:] {
		b := lineBBox(ln)
		if b[0] < bbox[0] {
			bbox[0] = b[0]
		}
		if b[1] < bbox[1] {
			bbox[1] = b[1]
		}
		if b[2] > bbox[2] {
			bbox[2] = b[2]
		}
		if b[3] > bbox[3] {
			bbox[3] = b[3]
		}
	}
	return bbox
}
