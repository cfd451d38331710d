package archive

import (
	"fmt"
	"io"

	"github.com/meigma/ziptree/internal/ziptype"
)

// offsetWriter tracks the archive offset of the next byte written. It refuses
// any write that would move that offset past the largest value a classic
// header field can carry, so every offset it reports fits a local or central
// header.
type offsetWriter struct {
	w   io.Writer
	off uint32
}

// Write implements io.Writer.
func (ow *offsetWriter) Write(p []byte) (int, error) {
	if uint64(len(p)) > maxField32-uint64(ow.off) {
		return 0, fmt.Errorf("%w: %d bytes at offset %d", ziptype.ErrSizeOverflow, len(p), ow.off)
	}
	n, err := ow.w.Write(p)
	ow.off += uint32(n) //nolint:gosec // bounded by maxField32 above
	return n, err
}
