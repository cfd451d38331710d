package ziptype

// ProgressEvent represents a progress update during encode or decode.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the entry currently being processed, if applicable.
	Path string

	// BytesDone is the number of archive bytes written or read so far.
	BytesDone uint64

	// EntriesDone is the number of entries completed.
	EntriesDone int

	// EntriesTotal is the total number of entries.
	// Zero indicates the total is unknown.
	EntriesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for encode and decode.
const (
	// StageFlattening indicates the tree is being flattened into entries.
	StageFlattening ProgressStage = iota

	// StageWriting indicates entries are being written to the archive.
	StageWriting

	// StageReading indicates entries are being read from the archive.
	StageReading

	// StageBuilding indicates the tree is being rebuilt from entries.
	StageBuilding
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageFlattening:
		return "flattening"
	case StageWriting:
		return "writing"
	case StageReading:
		return "reading"
	case StageBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
type ProgressFunc func(ProgressEvent)
