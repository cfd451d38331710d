// Package archive reads and writes the single-disk, non-encrypted subset of
// the ZIP file format.
//
// An archive is a sequence of local header + payload blocks, followed by one
// central directory record per entry in the same order, followed by a single
// end-of-central-directory record. All integers are little-endian.
//
// The writer stores payloads uncompressed (method 0). The reader accepts
// stored and raw-deflate (method 8) payloads.
package archive
