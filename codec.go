package ziptree

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/meigma/ziptree/internal/archive"
	"github.com/meigma/ziptree/internal/tree"
)

const (
	// DefaultMaxDepth is the default nesting limit for trees.
	DefaultMaxDepth = 256

	// DefaultMaxFileSize is the default limit on a decoded entry.
	DefaultMaxFileSize = archive.DefaultMaxFileSize

	// DefaultMaxEntries is the default limit on entries per archive.
	DefaultMaxEntries = archive.DefaultMaxEntries
)

// Codec encodes trees to archives and decodes archives to trees.
//
// A Codec holds only configuration and is safe for concurrent use.
type Codec struct {
	logger      *slog.Logger
	progress    ProgressFunc
	clock       func() time.Time
	location    *time.Location
	maxDepth    int
	maxFileSize uint64
	maxEntries  int
	verify      bool
}

// New creates a Codec with the given options.
func New(opts ...Option) *Codec {
	c := &Codec{
		clock:       time.Now,
		location:    time.Local,
		maxDepth:    DefaultMaxDepth,
		maxFileSize: DefaultMaxFileSize,
		maxEntries:  DefaultMaxEntries,
		verify:      true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Codec) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Encode converts nodes into a ZIP archive.
//
// Entries appear in depth-first pre-order: each folder is followed by its
// children, in the order given. Payloads are stored uncompressed and every
// entry carries the time at which Encode was called.
func (c *Codec) Encode(nodes []Node) ([]byte, error) {
	c.log().Info("encoding tree", "nodes", len(nodes))

	entries, err := tree.Flatten(nodes, c.maxDepth)
	if err != nil {
		return nil, fmt.Errorf("flatten tree: %w", err)
	}
	c.report(StageFlattening, len(entries))

	w := archive.NewWriter(
		archive.WithClock(c.clock),
		archive.WithWriterLogger(c.logger),
		archive.WithWriterProgress(c.progress),
	)
	data, err := w.Write(entries)
	if err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}

	c.log().Info("tree encoded", "entries", len(entries), "bytes", len(data))
	return data, nil
}

// Decode converts a ZIP archive into a tree.
//
// Folders are created for every path prefix, whether or not the archive has
// an explicit entry for them. Any malformed, unsupported or corrupt entry
// fails the whole decode.
func (c *Codec) Decode(data []byte) ([]Node, error) {
	c.log().Info("decoding archive", "bytes", len(data))

	entries, err := c.reader().Read(data)
	if err != nil {
		return nil, err
	}

	nodes, err := tree.Build(entries)
	if err != nil {
		return nil, err
	}
	c.report(StageBuilding, len(entries))

	c.log().Info("archive decoded", "entries", len(entries), "nodes", len(nodes))
	return nodes, nil
}

func (c *Codec) reader() *archive.Reader {
	return archive.NewReader(
		archive.WithMaxFileSize(c.maxFileSize),
		archive.WithMaxEntries(c.maxEntries),
		archive.WithVerifyChecksums(c.verify),
		archive.WithLocation(c.location),
		archive.WithReaderLogger(c.logger),
		archive.WithReaderProgress(c.progress),
	)
}

// report sends a whole-stage progress event if a callback is configured.
func (c *Codec) report(stage ProgressStage, entries int) {
	if c.progress == nil {
		return
	}
	c.progress(ProgressEvent{
		Stage:        stage,
		EntriesDone:  entries,
		EntriesTotal: entries,
	})
}

// Encode converts nodes into a ZIP archive using default options.
func Encode(nodes []Node) ([]byte, error) {
	return New().Encode(nodes)
}

// Decode converts a ZIP archive into a tree using default options.
func Decode(data []byte) ([]Node, error) {
	return New().Decode(data)
}
