package pagegrid

import (
	"math"
	"strings"
)

// isWhitespaceChar reports whether a char carries only whitespace.
func isWhitespaceChar(c Char) bool {
	return strings.TrimSpace(c.Text) == ""
}

// AssembleWords groups characters into words using directional gap
// tolerances. Characters arrive in reading order; a new word starts on
// whitespace, or when the gap from the previous character's trailing edge
// exceeds xTol, or when the baseline moves by more than yTol. For
// non-upright (vertical) text the axes swap. Whitespace characters are
// dropped and never enter a word.
func AssembleWords(chars []Char, xTol, yTol float64) []Word {
	if len(chars) == 0 {
		return nil
	}

	var words []Word
	var current []Char

	flush := func() {
		if len(current) > 0 {
			words = append(words, buildWord(current))
			current = nil
		}
	}

	for _, c := range chars {
		if isWhitespaceChar(c) {
			flush()
			continue
		}

		if len(current) > 0 {
			prev := current[len(current)-1]
			if wordBreak(prev, c, xTol, yTol) {
				flush()
			}
		}
		current = append(current, c)
	}
	flush() // Trailing run with no terminator still closes

	return words
}

// wordBreak reports whether c starts a new word after prev.
func wordBreak(prev, c Char, xTol, yTol float64) bool {
	if c.Upright != prev.Upright {
		return true
	}
	if c.Upright {
		gap := c.Box.X0 - prev.Box.X1
		drift := math.Abs(c.Baseline - prev.Baseline)
		return gap > xTol || drift > yTol
	}
	// Vertical text: advance runs along y, drift along x
	gap := c.Box.Y0 - prev.Box.Y1
	drift := math.Abs(c.Box.X0 - prev.Box.X0)
	return gap > yTol || drift > xTol
}

func buildWord(chars []Char) Word {
	var text strings.Builder
	box := chars[0].Box
	docTop := chars[0].DocTop
	for _, c := range chars {
		text.WriteString(c.Text)
		box = mergeRects(box, c.Box)
		if c.DocTop < docTop {
			docTop = c.DocTop
		}
	}

	dir := "ltr"
	if !chars[0].Upright {
		dir = "ttb"
	}
	return Word{
		Text:      text.String(),
		Box:       box,
		DocTop:    docTop,
		Upright:   chars[0].Upright,
		Direction: dir,
	}
}
