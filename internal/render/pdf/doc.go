// Package pdf implements the document renderer port with go-pdf/fpdf.
//
// The renderer consumes the section stream strictly in emission order and
// lays it out as A4 pages: a cover, a table of contents whose entries are
// internal links, a README page, the structure listing, and one section
// per file with highlighted monospace content. Anchors become fpdf link
// identifiers; a TOC entry may reference an anchor before the section
// defining it has been emitted, so link targets are resolved lazily.
package pdf
