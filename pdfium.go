package pagegrid

import (
	"math"
	"sync"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/enums"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// PdfiumSource adapts an open pdfium document to the PageSource interface.
// Character boxes are converted from PDF coordinates (origin bottom-left)
// to top-left origin on the way out. A pdfium instance is not safe for
// concurrent calls, so all access is serialized through a mutex; page
// parallelism above this adapter still pays off in the geometry pipeline.
type PdfiumSource struct {
	mu       sync.Mutex
	instance pdfium.Pdfium
	document references.FPDF_DOCUMENT
}

// NewPdfiumSource wraps an instance and an already-open document. The
// caller keeps ownership of both and closes them after the engine is done.
func NewPdfiumSource(instance pdfium.Pdfium, document references.FPDF_DOCUMENT) *PdfiumSource {
	return &PdfiumSource{instance: instance, document: document}
}

func (s *PdfiumSource) PageCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: s.document,
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get page count")
	}
	return resp.PageCount, nil
}

func (s *PdfiumSource) PageSize(pageIndex int) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageSizeLocked(pageIndex)
}

func (s *PdfiumSource) pageSizeLocked(pageIndex int) (float64, float64, error) {
	page := requests.Page{ByIndex: &requests.PageByIndex{
		Document: s.document,
		Index:    pageIndex,
	}}
	width, err := s.instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{Page: page})
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get page width")
	}
	height, err := s.instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{Page: page})
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get page height")
	}
	return float64(width.PageWidth), float64(height.PageHeight), nil
}

// PageCharacters materializes the page's characters in reading order with
// boxes, baselines and font metadata.
func (s *PdfiumSource) PageCharacters(pageIndex int) ([]Char, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, pageHeight, err := s.pageSizeLocked(pageIndex)
	if err != nil {
		return nil, err
	}

	page := requests.Page{ByIndex: &requests.PageByIndex{
		Document: s.document,
		Index:    pageIndex,
	}}
	textPage, err := s.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{Page: page})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer s.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := s.instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	chars := make([]Char, 0, charCount.Count)
	for i := 0; i < charCount.Count; i++ {
		unicodeRes, err := s.instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}

		charBox, err := s.instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}
		box := Rect{
			X0: charBox.Left,
			Y0: pageHeight - charBox.Top,
			X1: charBox.Right,
			Y1: pageHeight - charBox.Bottom,
		}

		fontSizeVal := 12.0
		if fontSize, err := s.instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			fontSizeVal = fontSize.FontSize
		}

		fontNameVal := ""
		if fontInfo, err := s.instance.FPDFText_GetFontInfo(&requests.FPDFText_GetFontInfo{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			fontNameVal = fontInfo.FontName
		}

		upright := true
		if angle, err := s.instance.FPDFText_GetCharAngle(&requests.FPDFText_GetCharAngle{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			upright = math.Abs(float64(angle.CharAngle)) < 0.01
		}

		baseline := box.Y1
		if origin, err := s.instance.FPDFText_GetCharOrigin(&requests.FPDFText_GetCharOrigin{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			baseline = pageHeight - origin.Y
		}

		chars = append(chars, Char{
			Text:      string(rune(unicodeRes.Unicode)),
			Box:       box,
			DocTop:    box.Y0,
			Baseline:  baseline,
			FontName:  fontNameVal,
			FontSize:  fontSizeVal,
			Upright:   upright,
			PageIndex: pageIndex,
		})
	}
	return chars, nil
}

// VectorPaths returns the bounding rectangles of the page's path objects.
// Pages without path geometry return an empty slice.
func (s *PdfiumSource) VectorPaths(pageIndex int) ([]Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, pageHeight, err := s.pageSizeLocked(pageIndex)
	if err != nil {
		return nil, err
	}

	page := requests.Page{ByIndex: &requests.PageByIndex{
		Document: s.document,
		Index:    pageIndex,
	}}
	countResp, err := s.instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{Page: page})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count page objects")
	}

	var rects []Rect
	for i := 0; i < countResp.Count; i++ {
		objResp, err := s.instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{
			Page:  page,
			Index: i,
		})
		if err != nil {
			continue
		}
		typeResp, err := s.instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{
			PageObject: objResp.PageObject,
		})
		if err != nil || typeResp.Type != enums.FPDF_PAGEOBJ_PATH {
			continue
		}
		boundsResp, err := s.instance.FPDFPageObj_GetBounds(&requests.FPDFPageObj_GetBounds{
			PageObject: objResp.PageObject,
		})
		if err != nil {
			continue
		}
		rects = append(rects, Rect{
			X0: float64(boundsResp.Left),
			Y0: pageHeight - float64(boundsResp.Top),
			X1: float64(boundsResp.Right),
			Y1: pageHeight - float64(boundsResp.Bottom),
		})
	}
	return rects, nil
}

// TextUnderRect fetches the text pdfium finds inside a rectangle, given in
// top-left origin coordinates.
func (s *PdfiumSource) TextUnderRect(pageIndex int, r Rect) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, pageHeight, err := s.pageSizeLocked(pageIndex)
	if err != nil {
		return "", err
	}

	page := requests.Page{ByIndex: &requests.PageByIndex{
		Document: s.document,
		Index:    pageIndex,
	}}
	textPage, err := s.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{Page: page})
	if err != nil {
		return "", errors.Wrap(err, "failed to load text page")
	}
	defer s.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	resp, err := s.instance.FPDFText_GetBoundedText(&requests.FPDFText_GetBoundedText{
		TextPage: textPage.TextPage,
		Left:     r.X0,
		Top:      pageHeight - r.Y0,
		Right:    r.X1,
		Bottom:   pageHeight - r.Y1,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get bounded text")
	}
	return resp.Text, nil
}
