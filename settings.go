package pagegrid

// Edge-source strategies for each table axis.
const (
	StrategyLines = "lines"
	StrategyText  = "text"
)

// TableSettings controls table detection. The general tolerances fan out
// to their axis-specific variants when those are left unset (zero), so a
// caller overriding only SnapTolerance affects both axes.
type TableSettings struct {
	VerticalStrategy   string
	HorizontalStrategy string

	SnapTolerance  float64
	SnapXTolerance float64
	SnapYTolerance float64

	JoinTolerance  float64
	JoinXTolerance float64
	JoinYTolerance float64

	EdgeMinLength float64

	MinWordsVertical   int
	MinWordsHorizontal int

	IntersectionTolerance  float64
	IntersectionXTolerance float64
	IntersectionYTolerance float64

	TextXTolerance float64
	TextYTolerance float64
}

// DefaultTableSettings returns the settings pdfplumber-style extraction
// defaults to.
func DefaultTableSettings() TableSettings {
	return TableSettings{
		VerticalStrategy:      StrategyText,
		HorizontalStrategy:    StrategyText,
		SnapTolerance:         3,
		JoinTolerance:         3,
		EdgeMinLength:         3,
		MinWordsVertical:      3,
		MinWordsHorizontal:    1,
		IntersectionTolerance: 3,
		TextXTolerance:        3,
		TextYTolerance:        3,
	}
}

// resolve materializes the axis-specific tolerances from the general ones
// and fills unset strategies with the text default.
func (s TableSettings) resolve() TableSettings {
	if s.VerticalStrategy == "" {
		s.VerticalStrategy = StrategyText
	}
	if s.HorizontalStrategy == "" {
		s.HorizontalStrategy = StrategyText
	}
	if s.SnapXTolerance == 0 {
		s.SnapXTolerance = s.SnapTolerance
	}
	if s.SnapYTolerance == 0 {
		s.SnapYTolerance = s.SnapTolerance
	}
	if s.JoinXTolerance == 0 {
		s.JoinXTolerance = s.JoinTolerance
	}
	if s.JoinYTolerance == 0 {
		s.JoinYTolerance = s.JoinTolerance
	}
	if s.IntersectionXTolerance == 0 {
		s.IntersectionXTolerance = s.IntersectionTolerance
	}
	if s.IntersectionYTolerance == 0 {
		s.IntersectionYTolerance = s.IntersectionTolerance
	}
	return s
}

// Config carries engine-level options beyond table detection.
type Config struct {
	Table TableSettings

	// DetectColumns enables the page-segmentation pipeline alongside
	// table extraction.
	DetectColumns bool

	// EnableMetricsLogging logs per-page timing and entity counts.
	EnableMetricsLogging bool

	// MaxEdgesPerPage caps the processed edge count before the O(V*H)
	// intersection search. Zero means the default cap.
	MaxEdgesPerPage int

	// Workers bounds page-level parallelism in ProcessDocument. Zero
	// means one worker per page up to the page count.
	Workers int
}

// DefaultConfig returns a Config with table defaults and column detection
// enabled.
func DefaultConfig() Config {
	return Config{
		Table:         DefaultTableSettings(),
		DetectColumns: true,
	}
}
