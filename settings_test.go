package pagegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableSettings_GeneralToleranceFanOut(t *testing.T) {
	s := TableSettings{SnapTolerance: 2, JoinTolerance: 4, IntersectionTolerance: 5}.resolve()

	require.Equal(t, 2.0, s.SnapXTolerance)
	require.Equal(t, 2.0, s.SnapYTolerance)
	require.Equal(t, 4.0, s.JoinXTolerance)
	require.Equal(t, 4.0, s.JoinYTolerance)
	require.Equal(t, 5.0, s.IntersectionXTolerance)
	require.Equal(t, 5.0, s.IntersectionYTolerance)
}

func TestTableSettings_AxisOverrideWins(t *testing.T) {
	s := TableSettings{SnapTolerance: 2, SnapXTolerance: 7}.resolve()

	require.Equal(t, 7.0, s.SnapXTolerance)
	require.Equal(t, 2.0, s.SnapYTolerance)
}

func TestTableSettings_StrategyDefaultsToText(t *testing.T) {
	s := TableSettings{}.resolve()
	require.Equal(t, StrategyText, s.VerticalStrategy)
	require.Equal(t, StrategyText, s.HorizontalStrategy)
}

func TestDefaultTableSettings(t *testing.T) {
	s := DefaultTableSettings()
	require.Equal(t, 3.0, s.SnapTolerance)
	require.Equal(t, 3.0, s.JoinTolerance)
	require.Equal(t, 3.0, s.EdgeMinLength)
	require.Equal(t, 3, s.MinWordsVertical)
	require.Equal(t, 1, s.MinWordsHorizontal)
	require.Equal(t, 3.0, s.TextXTolerance)
	require.Equal(t, 3.0, s.TextYTolerance)
}
