package ziptype

import "strconv"

// Method identifies the compression method of an archive entry.
type Method uint16

const (
	// MethodStore stores the payload verbatim.
	MethodStore Method = 0

	// MethodDeflate is raw DEFLATE. Supported for reading only.
	MethodDeflate Method = 8
)

// String returns the human-readable name of the method.
func (m Method) String() string {
	switch m {
	case MethodStore:
		return "store"
	case MethodDeflate:
		return "deflate"
	default:
		return "method(" + strconv.Itoa(int(m)) + ")"
	}
}

// Supported reports whether the method can be decoded.
func (m Method) Supported() bool {
	return m == MethodStore || m == MethodDeflate
}
