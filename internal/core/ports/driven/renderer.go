package driven

import (
	"io"

	"github.com/custodia-labs/repopress/internal/core/domain"
)

// Sink consumes document sections strictly in emission order.
type Sink interface {
	Emit(s domain.Section) error
}

// DocumentSink is a per-document sink. Close finalizes the artifact and
// writes it to the writer the sink was opened with.
type DocumentSink interface {
	Sink
	Close() error
}

// Renderer opens per-document sinks that turn the section stream into a
// finished artifact.
type Renderer interface {
	// Begin starts a new document whose final bytes go to w on Close.
	Begin(w io.Writer) (DocumentSink, error)
}
