package histdata

import (
	"context"
	"path/filepath"

	"github.com/yanun0323/errors"

	"main/internal/feed"
	"main/internal/schema"
)

// Output log file names.
const (
	PositionsFile = "positions.txt"
	RiskFile      = "risk.txt"
	ExecutionFile = "executions.txt"
	StreamsFile   = "streams.txt"
	GUIFile       = "gui.txt"
	InquiriesFile = "allinquiries.txt"
)

// FilePublisher archives updates to append-only comma-delimited logs,
// one file per record kind.
type FilePublisher struct {
	books   []string
	writers map[string]*feed.LogWriter
}

// NewFilePublisher creates the output logs under dir. The books order
// fixes the column order of position lines.
func NewFilePublisher(ctx context.Context, dir string, books []string, queueSize int) (*FilePublisher, error) {
	p := &FilePublisher{
		books:   books,
		writers: make(map[string]*feed.LogWriter),
	}
	for _, name := range []string{PositionsFile, RiskFile, ExecutionFile, StreamsFile, GUIFile, InquiriesFile} {
		w, err := feed.NewLogWriter(feed.WriterConfig{
			Path:      filepath.Join(dir, name),
			QueueSize: queueSize,
			Truncate:  true,
		})
		if err != nil {
			p.Close()
			return nil, errors.Wrap(err, "create output log").With("file", name)
		}
		if err := w.Start(ctx); err != nil {
			p.Close()
			return nil, errors.Wrap(err, "start output log").With("file", name)
		}
		p.writers[name] = w
	}
	return p, nil
}

// PublishPosition appends a position line.
func (p *FilePublisher) PublishPosition(pos schema.Position) error {
	return p.writers[PositionsFile].TryAppend(feed.EncodePosition(pos, p.books))
}

// PublishRisk appends a risk line.
func (p *FilePublisher) PublishRisk(v schema.PV01) error {
	return p.writers[RiskFile].TryAppend(feed.EncodeRisk(v))
}

// PublishExecution appends an execution line.
func (p *FilePublisher) PublishExecution(o schema.ExecutionOrder) error {
	return p.writers[ExecutionFile].TryAppend(feed.EncodeExecution(o))
}

// PublishStream appends a streamed quote line.
func (p *FilePublisher) PublishStream(ps schema.PriceStream) error {
	return p.writers[StreamsFile].TryAppend(feed.EncodePriceStream(ps))
}

// PublishGUIQuote appends a display snapshot line.
func (p *FilePublisher) PublishGUIQuote(q schema.GUIQuote) error {
	return p.writers[GUIFile].TryAppend(feed.EncodeGUIQuote(q))
}

// PublishInquiry appends an inquiry line.
func (p *FilePublisher) PublishInquiry(inq schema.Inquiry) error {
	return p.writers[InquiriesFile].TryAppend(feed.EncodeInquiry(inq))
}

// Close flushes and closes every log, returning the first error.
func (p *FilePublisher) Close() error {
	var first error
	for _, w := range p.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
