package cumulative

import (
	"fmt"
	"strings"

	"matchup-model/core/diag"
	"matchup-model/core/tuning"
)

// Block is one team's run of lines in a document.
type Block struct {
	// Index is the position of the raw block in the document, starting at 0.
	Index int
	Lines []string
}

// SplitBlocks splits a line stream after every summary line ("3 - 3").
// Lines after the last summary form one trailing block if any of them is non-blank.
func SplitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		current = append(current, line)
		if IsSummary(line) {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, l := range current {
		if l != "" {
			blocks = append(blocks, current)
			break
		}
	}
	return blocks
}

// CleanBlock drops blank and boilerplate lines.
func (f *NoiseFilter) CleanBlock(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" && !f.IsNoise(l) {
			cleaned = append(cleaned, l)
		}
	}
	return cleaned
}

// CleanBlock drops blank and boilerplate lines using the default filter.
func CleanBlock(lines []string) []string {
	return defaultNoise.CleanBlock(lines)
}

// Segment splits a document into cleaned blocks. Blocks with fewer than three
// surviving lines are recorded as segmentation failures and dropped.
func (f *NoiseFilter) Segment(doc Document, diags *diag.Diagnostics) []Block {
	raw := SplitBlocks(doc.Lines)
	blocks := make([]Block, 0, len(raw))
	for i, lines := range raw {
		cleaned := f.CleanBlock(lines)
		if len(cleaned) < tuning.HeaderLines {
			diags.Record(diag.Entry{
				Kind:     diag.SegmentationFailure,
				Source:   doc.Name,
				Reason:   fmt.Sprintf("block %d has %d lines after cleaning", i, len(cleaned)),
				Fragment: cleaned,
			})
			continue
		}
		blocks = append(blocks, Block{Index: i, Lines: cleaned})
	}
	return blocks
}

// Segment splits a document using the default filter.
func Segment(doc Document, diags *diag.Diagnostics) []Block {
	return defaultNoise.Segment(doc, diags)
}
