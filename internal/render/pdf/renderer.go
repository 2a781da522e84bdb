package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

const (
	indentStep   = 5.0 // mm per tree level
	bodyLineHt   = 3.6 // mm per monospace body line
	listLineHt   = 5.5 // mm per listing line
	footerMargin = 15.0

	folderMarker = ">> "
	fileMarker   = "-  "
)

// Ensure Renderer implements the port.
var _ driven.Renderer = (*Renderer)(nil)

// Renderer writes paginated PDF documents from a section stream.
type Renderer struct {
	highlighter driven.Highlighter
	log         *zap.Logger
}

// New creates a PDF renderer that colors file bodies with the given
// highlighter.
func New(highlighter driven.Highlighter, log *zap.Logger) *Renderer {
	return &Renderer{highlighter: highlighter, log: log}
}

// Begin starts a new document whose bytes go to w on Close.
func (r *Renderer) Begin(w io.Writer) (driven.DocumentSink, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, footerMargin)
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	})

	return &sink{
		doc:         doc,
		w:           w,
		tr:          doc.UnicodeTranslatorFromDescriptor(""),
		links:       make(map[string]int),
		highlighter: r.highlighter,
		log:         r.log,
	}, nil
}

// sink lays out one document. It is request-local and never shared.
type sink struct {
	doc         *fpdf.Fpdf
	w           io.Writer
	tr          func(string) string
	links       map[string]int
	highlighter driven.Highlighter
	log         *zap.Logger
}

// Emit consumes the next section in order.
func (s *sink) Emit(sec domain.Section) error {
	switch v := sec.(type) {
	case domain.Cover:
		s.cover(v)
	case domain.TOCHeader:
		s.tocHeader()
	case domain.TOCEntry:
		s.tocEntry(v)
	case domain.ReadmeSection:
		s.readme(v)
	case domain.StructureHeader:
		s.structureHeader()
	case domain.StructureEntry:
		s.structureEntry(v)
	case domain.FileSection:
		s.file(v)
	default:
		return fmt.Errorf("pdf: unknown section type %T", sec)
	}
	return s.doc.Error()
}

// Close finalizes the document and writes it out.
func (s *sink) Close() error {
	return s.doc.Output(s.w)
}

// linkID returns the fpdf link for an anchor, creating it on first use so
// references may precede definitions.
func (s *sink) linkID(anchor string) int {
	if id, ok := s.links[anchor]; ok {
		return id
	}
	id := s.doc.AddLink()
	s.links[anchor] = id
	return id
}

// defineAnchor points an anchor at the top of the current page.
func (s *sink) defineAnchor(anchor string) {
	s.doc.SetLink(s.linkID(anchor), 0, s.doc.PageNo())
}

func (s *sink) cover(v domain.Cover) {
	s.doc.SetTitle(v.Title+" - repository documentation", false)
	s.doc.AddPage()

	s.doc.Ln(50)
	s.doc.SetTextColor(0, 0, 0)
	s.doc.SetFont("Helvetica", "B", 30)
	s.doc.MultiCell(0, 14, s.tr(v.Title), "", "C", false)

	s.doc.SetFont("Helvetica", "", 16)
	s.doc.SetTextColor(90, 90, 90)
	s.doc.MultiCell(0, 9, s.tr(v.Subtitle), "", "C", false)

	if v.Description != "" {
		s.doc.Ln(8)
		s.doc.SetFont("Helvetica", "I", 12)
		s.doc.SetTextColor(60, 60, 60)
		s.doc.MultiCell(0, 6, s.tr(v.Description), "", "C", false)
	}

	s.doc.Ln(10)
	s.doc.SetFont("Helvetica", "", 11)
	s.doc.SetTextColor(90, 90, 90)
	stats := fmt.Sprintf("Stars: %d    Forks: %d", v.Stars, v.Forks)
	if v.DefaultBranch != "" {
		stats += "    Branch: " + v.DefaultBranch
	}
	s.doc.MultiCell(0, 6, s.tr(stats), "", "C", false)

	s.doc.Ln(4)
	s.doc.SetFont("Helvetica", "", 9)
	generated := "Generated " + v.GeneratedAt.UTC().Format("2 Jan 2006 15:04 MST")
	s.doc.MultiCell(0, 5, s.tr(generated), "", "C", false)
}

func (s *sink) tocHeader() {
	s.doc.AddPage()
	s.heading("Table of Contents")
}

func (s *sink) tocEntry(v domain.TOCEntry) {
	left, _, _, _ := s.doc.GetMargins()
	s.doc.SetX(left + float64(v.Indent)*indentStep)

	label := v.Label
	if v.IsDir {
		label = folderMarker + label
	}
	if v.Unavailable {
		label += " (unavailable)"
	}

	if v.Anchor != "" {
		s.doc.SetFont("Helvetica", "", 10)
		s.doc.SetTextColor(9, 105, 218)
		s.doc.CellFormat(0, listLineHt, s.tr(label), "", 1, "L", false, s.linkID(v.Anchor), "")
		return
	}

	s.doc.SetFont("Helvetica", "B", 10)
	s.doc.SetTextColor(60, 60, 60)
	s.doc.CellFormat(0, listLineHt, s.tr(label), "", 1, "L", false, 0, "")
}

func (s *sink) readme(v domain.ReadmeSection) {
	s.doc.AddPage()
	s.defineAnchor(domain.AnchorReadme)
	s.heading(v.Name)

	s.doc.SetFont("Helvetica", "", 10)
	s.doc.SetTextColor(0, 0, 0)
	s.doc.MultiCell(0, 5, s.tr(v.Content), "", "L", false)
}

func (s *sink) structureHeader() {
	s.doc.AddPage()
	s.defineAnchor(domain.AnchorStructure)
	s.heading("Repository Structure")
}

func (s *sink) structureEntry(v domain.StructureEntry) {
	left, _, _, _ := s.doc.GetMargins()
	s.doc.SetX(left + float64(v.Indent)*indentStep)

	label := v.Label
	if v.IsDir {
		s.doc.SetFont("Helvetica", "B", 10)
		s.doc.SetTextColor(40, 40, 40)
		label = folderMarker + label
	} else {
		s.doc.SetFont("Helvetica", "", 10)
		s.doc.SetTextColor(80, 80, 80)
		label = fileMarker + label
	}
	if v.Unavailable {
		label += " (unavailable)"
	}
	s.doc.CellFormat(0, listLineHt, s.tr(label), "", 1, "L", false, 0, "")
}

func (s *sink) file(v domain.FileSection) {
	s.doc.AddPage()
	s.defineAnchor(v.Anchor)
	s.heading(v.Path)

	if v.Placeholder {
		s.doc.SetFont("Helvetica", "I", 10)
		s.doc.SetTextColor(128, 128, 128)
		s.doc.MultiCell(0, 5, s.tr(v.Body), "", "L", false)
		return
	}

	s.doc.SetFont("Courier", "", 8)
	s.doc.SetTextColor(0, 0, 0)
	for _, span := range s.highlighter.Highlight(v.Path, v.Body) {
		s.doc.SetTextColor(int(span.R), int(span.G), int(span.B))
		s.doc.Write(bodyLineHt, s.tr(span.Text))
	}
	s.doc.Ln(bodyLineHt)
}

// heading draws a section title with a rule under it.
func (s *sink) heading(title string) {
	s.doc.SetFont("Helvetica", "B", 14)
	s.doc.SetTextColor(0, 0, 0)
	s.doc.MultiCell(0, 8, s.tr(title), "", "L", false)
	x := s.doc.GetX()
	y := s.doc.GetY()
	s.doc.SetDrawColor(200, 200, 200)
	s.doc.Line(x, y+1, 200, y+1)
	s.doc.Ln(4)
}
