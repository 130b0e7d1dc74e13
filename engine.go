package pagegrid

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Sentinel errors returned by page processing.
var (
	// ErrInvalidPage indicates a page index outside the document.
	ErrInvalidPage = errors.New("pagegrid: invalid page index")

	// ErrExtractionFailed indicates the extraction collaborator could not
	// produce characters or paths for a page.
	ErrExtractionFailed = errors.New("pagegrid: extraction failed")

	// ErrTooManyEdges indicates a page exceeded the processed edge cap
	// before the intersection search.
	ErrTooManyEdges = errors.New("pagegrid: edge count exceeds page cap")
)

const defaultMaxEdgesPerPage = 5000

// PageResult holds everything inferred for a single page. A page with no
// detectable structure has empty slices, not nil errors.
type PageResult struct {
	PageIndex int
	Tables    []*Table
	Columns   []*Column
	Regions   []*TableRegion
}

// Engine runs the table and column inference pipelines against an
// extraction source. All working buffers are scoped to one ProcessPage
// call, so a single Engine is safe for concurrent page processing.
type Engine struct {
	src PageSource
	cfg Config
}

// NewEngine returns an Engine over the given source.
func NewEngine(src PageSource, cfg Config) *Engine {
	cfg.Table = cfg.Table.resolve()
	if cfg.MaxEdgesPerPage <= 0 {
		cfg.MaxEdgesPerPage = defaultMaxEdgesPerPage
	}
	return &Engine{src: src, cfg: cfg}
}

// ProcessPage runs both pipelines for one page. An extraction failure
// aborts only this page; degenerate geometry at any stage collapses to an
// empty result rather than an error.
func (e *Engine) ProcessPage(ctx context.Context, pageIndex int) (*PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count, err := e.src.PageCount()
	if err != nil {
		return nil, errors.Wrap(ErrExtractionFailed, err.Error())
	}
	if pageIndex < 0 || pageIndex >= count {
		return nil, errors.Wrapf(ErrInvalidPage, "page %d of %d", pageIndex, count)
	}

	start := time.Now()

	pageWidth, pageHeight, err := e.src.PageSize(pageIndex)
	if err != nil {
		return nil, errors.Wrapf(ErrExtractionFailed, "page %d size: %v", pageIndex, err)
	}
	chars, err := e.src.PageCharacters(pageIndex)
	if err != nil {
		return nil, errors.Wrapf(ErrExtractionFailed, "page %d characters: %v", pageIndex, err)
	}

	result := &PageResult{PageIndex: pageIndex}
	if len(chars) == 0 {
		return result, nil
	}

	tables, err := e.extractTables(chars, pageIndex, pageWidth, pageHeight)
	if err != nil {
		return nil, err
	}
	result.Tables = tables

	if e.cfg.DetectColumns {
		blocks := BuildPageBlocks(chars, e.cfg.Table.TextYTolerance)
		result.Columns = DetectColumns(blocks, pageWidth)
		// Classification must precede merging: the merger only fuses
		// text blocks, so candidates marked here survive as region input.
		for _, col := range result.Columns {
			ClassifyBlocks(col)
			MergeAdjacentBlocks(col)
			result.Regions = append(result.Regions, ClusterTableRegions(col)...)
		}
	}

	if e.cfg.EnableMetricsLogging {
		log.Printf("pagegrid: page %d: %d chars, %d tables, %d columns, %d regions in %s",
			pageIndex, len(chars), len(result.Tables), len(result.Columns),
			len(result.Regions), time.Since(start))
	}
	return result, nil
}

// extractTables runs pipeline A: words, edges, snap/join/filter,
// intersections, cells, tables, cell text.
func (e *Engine) extractTables(chars []Char, pageIndex int, pageWidth, pageHeight float64) ([]*Table, error) {
	s := e.cfg.Table
	words := AssembleWords(chars, s.TextXTolerance, s.TextYTolerance)
	if len(words) == 0 {
		return nil, nil
	}

	var pathEdges []Edge
	if s.VerticalStrategy == StrategyLines || s.HorizontalStrategy == StrategyLines {
		rects, err := e.src.VectorPaths(pageIndex)
		if err != nil {
			return nil, errors.Wrapf(ErrExtractionFailed, "page %d paths: %v", pageIndex, err)
		}
		pathEdges = PathRectsToEdges(rects, pageWidth, pageHeight)
	}

	var edges []Edge
	if s.HorizontalStrategy == StrategyLines {
		edges = append(edges, edgesWithOrientation(pathEdges, OrientationH)...)
	} else {
		edges = append(edges, wordsToEdgesHorizontal(words, s.MinWordsHorizontal)...)
	}
	if s.VerticalStrategy == StrategyLines {
		edges = append(edges, edgesWithOrientation(pathEdges, OrientationV)...)
	} else {
		edges = append(edges, wordsToEdgesVertical(words, s.MinWordsVertical)...)
	}
	if len(edges) > e.cfg.MaxEdgesPerPage {
		return nil, errors.Wrapf(ErrTooManyEdges, "page %d: %d edges", pageIndex, len(edges))
	}

	edges = snapEdges(edges, s.SnapXTolerance, s.SnapYTolerance)
	edges = joinEdges(edges, s.JoinXTolerance, s.JoinYTolerance)
	edges = filterEdgesByLength(edges, s.EdgeMinLength)

	intersections := findIntersections(edges, s.IntersectionXTolerance, s.IntersectionYTolerance)
	cells := intersectionsToCells(intersections)
	tables := cellsToTables(cells)

	for _, t := range tables {
		PopulateCellText(t, chars)
	}
	return tables, nil
}

func edgesWithOrientation(edges []Edge, orientation string) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Orientation == orientation {
			out = append(out, e)
		}
	}
	return out
}

// ProcessDocument runs ProcessPage for every page, in parallel up to
// cfg.Workers. A page whose extraction fails contributes an empty result
// and does not abort the batch; the first non-extraction error cancels the
// remaining pages.
func (e *Engine) ProcessDocument(ctx context.Context) ([]*PageResult, error) {
	count, err := e.src.PageCount()
	if err != nil {
		return nil, errors.Wrap(ErrExtractionFailed, err.Error())
	}

	workers := e.cfg.Workers
	if workers <= 0 || workers > count {
		workers = count
	}
	if workers == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*PageResult, count)
	pages := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pageIndex := range pages {
				res, err := e.ProcessPage(ctx, pageIndex)
				if err != nil {
					if errors.Is(err, ErrExtractionFailed) || errors.Is(err, ErrTooManyEdges) {
						res = &PageResult{PageIndex: pageIndex}
					} else {
						mu.Lock()
						if firstErr == nil {
							firstErr = err
							cancel()
						}
						mu.Unlock()
						continue
					}
				}
				results[pageIndex] = res
			}
		}()
	}

feed:
	for i := 0; i < count; i++ {
		select {
		case pages <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(pages)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range results {
		if results[i] == nil {
			results[i] = &PageResult{PageIndex: i}
		}
	}
	return results, nil
}
