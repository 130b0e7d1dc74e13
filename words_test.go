package pagegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeChar(text string, x0, y0, x1, y1 float64) Char {
	return Char{
		Text:     text,
		Box:      Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
		DocTop:   y0,
		Baseline: y1,
		FontSize: 10,
		Upright:  true,
	}
}

func charsForText(text string, x0, y0 float64) []Char {
	chars := make([]Char, 0, len(text))
	x := x0
	for _, r := range text {
		chars = append(chars, makeChar(string(r), x, y0, x+5, y0+10))
		x += 5
	}
	return chars
}

func TestAssembleWords_SplitsOnWhitespace(t *testing.T) {
	chars := charsForText("to be", 0, 0)
	words := AssembleWords(chars, 3, 3)

	require.Len(t, words, 2)
	require.Equal(t, "to", words[0].Text)
	require.Equal(t, "be", words[1].Text)
}

func TestAssembleWords_SplitsOnWideGap(t *testing.T) {
	chars := append(charsForText("ab", 0, 0), charsForText("cd", 50, 0)...)
	words := AssembleWords(chars, 3, 3)

	require.Len(t, words, 2)
	require.Equal(t, "ab", words[0].Text)
	require.Equal(t, "cd", words[1].Text)
	require.Equal(t, 50.0, words[1].Box.X0)
}

func TestAssembleWords_SplitsOnBaselineDrift(t *testing.T) {
	chars := append(charsForText("ab", 0, 0), charsForText("cd", 10, 20)...)
	words := AssembleWords(chars, 100, 3)

	require.Len(t, words, 2)
}

func TestAssembleWords_UnionBox(t *testing.T) {
	words := AssembleWords(charsForText("abc", 0, 0), 3, 3)

	require.Len(t, words, 1)
	require.Equal(t, Rect{X0: 0, Y0: 0, X1: 15, Y1: 10}, words[0].Box)
	require.Equal(t, "ltr", words[0].Direction)
	require.True(t, words[0].Upright)
}

func TestAssembleWords_VerticalText(t *testing.T) {
	chars := []Char{
		{Text: "a", Box: Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}, Upright: false},
		{Text: "b", Box: Rect{X0: 0, Y0: 11, X1: 10, Y1: 21}, Upright: false},
		{Text: "c", Box: Rect{X0: 0, Y0: 60, X1: 10, Y1: 70}, Upright: false},
	}
	words := AssembleWords(chars, 3, 3)

	require.Len(t, words, 2)
	require.Equal(t, "ab", words[0].Text)
	require.Equal(t, "ttb", words[0].Direction)
	require.Equal(t, "c", words[1].Text)
}

func TestAssembleWords_TrailingRunCloses(t *testing.T) {
	words := AssembleWords(charsForText("end", 0, 0), 3, 3)
	require.Len(t, words, 1)
	require.Equal(t, "end", words[0].Text)
}

func TestAssembleWords_WhitespaceOnly(t *testing.T) {
	require.Empty(t, AssembleWords(charsForText("   ", 0, 0), 3, 3))
}
