package ziptree

import "github.com/meigma/ziptree/internal/ziptype"

// Re-export progress types from ziptype.
type (
	// ProgressEvent represents a progress update during encode or decode.
	ProgressEvent = ziptype.ProgressEvent

	// ProgressStage identifies the current phase of an operation.
	ProgressStage = ziptype.ProgressStage

	// ProgressFunc receives progress updates during operations.
	ProgressFunc = ziptype.ProgressFunc
)

// Re-export progress stage constants.
const (
	// StageFlattening indicates the tree is being flattened into entries.
	StageFlattening = ziptype.StageFlattening

	// StageWriting indicates entries are being written to the archive.
	StageWriting = ziptype.StageWriting

	// StageReading indicates entries are being read from the archive.
	StageReading = ziptype.StageReading

	// StageBuilding indicates the tree is being rebuilt from entries.
	StageBuilding = ziptype.StageBuilding
)
