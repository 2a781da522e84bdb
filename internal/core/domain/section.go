package domain

import (
	"strings"
	"time"
)

// Well-known anchors for the singleton sections.
const (
	AnchorReadme    = "readme"
	AnchorStructure = "structure"
)

var anchorReplacer = strings.NewReplacer("/", "-", ".", "-")

// AnchorID derives a stable anchor identifier from a repository path by
// replacing path separators and dots with dashes. The same path always
// yields the same anchor within one document.
func AnchorID(path string) string {
	return anchorReplacer.Replace(path)
}

// FileAnchor returns the anchor used by a per-file content section.
func FileAnchor(path string) string {
	return "file-" + AnchorID(path)
}

// Section is one element of the document emission sequence. Sections are
// produced in a fixed order and consumed strictly in that order by the
// rendering sink; there is no random access or re-ordering after emission.
type Section interface {
	section()
}

// Cover opens the document: repository name, owner, optional description,
// star/fork counts, and the generation timestamp.
type Cover struct {
	Title         string
	Subtitle      string
	Description   string
	DefaultBranch string
	Stars         int
	Forks         int
	GeneratedAt   time.Time
}

// TOCHeader opens the table of contents.
type TOCHeader struct{}

// TOCEntry is one table-of-contents line. Anchor is empty for lines that
// do not link anywhere (directories).
type TOCEntry struct {
	Label  string
	Anchor string
	Indent int
	IsDir  bool

	// Unavailable marks a directory whose listing could not be fetched.
	Unavailable bool
}

// ReadmeSection is the full-page README body, rendered as plain text.
type ReadmeSection struct {
	Name    string
	Content string
}

// StructureHeader opens the structure listing page.
type StructureHeader struct{}

// StructureEntry is one line of the structure listing.
type StructureEntry struct {
	Label       string
	Indent      int
	IsDir       bool
	Unavailable bool
}

// FileSection is a full-page per-file content section. Body holds either
// the fetched text or a placeholder; Placeholder distinguishes the two so
// renderers skip highlighting for substituted text.
type FileSection struct {
	Path        string
	Anchor      string
	Body        string
	Placeholder bool
}

func (Cover) section()           {}
func (TOCHeader) section()       {}
func (TOCEntry) section()        {}
func (ReadmeSection) section()   {}
func (StructureHeader) section() {}
func (StructureEntry) section()  {}
func (FileSection) section()     {}
