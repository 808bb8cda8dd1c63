package compile

import "math"

// Line packing constants shared with the heuristic. The 0.5pt-per-char width
// and 1.35 line height are empirical fudge factors, not typography.
const (
	boxPadding       = 16.0
	lineHeightFactor = 1.35
	minCharsPerLine  = 8
)

// FitFontSize picks the largest font size in [floor, base] whose estimated
// wrapped line count fits the box, shrinking in 2pt steps.
//
// This is a packing estimate, not a text-measurement engine: characters per
// line are approximated as width/(size*0.5) and line height as size*1.35.
// Exact wrapping is the rendering engine's job. When even the floor size
// overflows, the floor is returned and overflow accepted; unreadably tiny text
// is worse than a scroll.
func FitFontSize(text string, boxW, boxH float64, base, floor int) int {
	safeW := math.Max(1, boxW-boxPadding)
	safeH := math.Max(1, boxH-boxPadding)

	if fits(len(text), safeW, safeH, base) {
		return base
	}

	size := base
	for size > floor {
		size -= 2
		if fits(len(text), safeW, safeH, size) {
			break
		}
	}
	if size < floor {
		return floor
	}
	return size
}

func fits(textLen int, safeW, safeH float64, size int) bool {
	charsPerLine := int(math.Floor(safeW / (float64(size) * 0.5)))
	if charsPerLine < minCharsPerLine {
		charsPerLine = minCharsPerLine
	}
	lines := int(math.Ceil(float64(textLen) / float64(charsPerLine)))
	maxLines := int(math.Floor(safeH / (float64(size) * lineHeightFactor)))
	return lines <= maxLines
}
