package archive

import "encoding/binary"

const (
	localHeaderSignature   = 0x04034b50
	centralHeaderSignature = 0x02014b50
	endSignature           = 0x06054b50

	localHeaderLen   = 30
	centralHeaderLen = 46
	endRecordLen     = 22

	// zipVersion is 2.0, the minimum for folders and deflate.
	zipVersion = 20

	maxCommentLen = 0xffff

	// flagEncrypted is general purpose bit 0.
	flagEncrypted = 0x1
)

var le = binary.LittleEndian

// localHeader is the fixed part of a local file header.
type localHeader struct {
	version          uint16
	flags            uint16
	method           uint16
	modTime          uint16
	modDate          uint16
	crc32            uint32
	compressedSize   uint32
	uncompressedSize uint32
	nameLen          uint16
	extraLen         uint16
}

func (h *localHeader) appendTo(b []byte) []byte {
	b = le.AppendUint32(b, localHeaderSignature)
	b = le.AppendUint16(b, h.version)
	b = le.AppendUint16(b, h.flags)
	b = le.AppendUint16(b, h.method)
	b = le.AppendUint16(b, h.modTime)
	b = le.AppendUint16(b, h.modDate)
	b = le.AppendUint32(b, h.crc32)
	b = le.AppendUint32(b, h.compressedSize)
	b = le.AppendUint32(b, h.uncompressedSize)
	b = le.AppendUint16(b, h.nameLen)
	b = le.AppendUint16(b, h.extraLen)
	return b
}

// parseLocalHeader decodes a local header from b, which must hold at least
// localHeaderLen bytes and start with the signature.
func parseLocalHeader(b []byte) localHeader {
	return localHeader{
		version:          le.Uint16(b[4:]),
		flags:            le.Uint16(b[6:]),
		method:           le.Uint16(b[8:]),
		modTime:          le.Uint16(b[10:]),
		modDate:          le.Uint16(b[12:]),
		crc32:            le.Uint32(b[14:]),
		compressedSize:   le.Uint32(b[18:]),
		uncompressedSize: le.Uint32(b[22:]),
		nameLen:          le.Uint16(b[26:]),
		extraLen:         le.Uint16(b[28:]),
	}
}

// centralHeader is the fixed part of a central directory record.
type centralHeader struct {
	versionMadeBy    uint16
	versionNeeded    uint16
	flags            uint16
	method           uint16
	modTime          uint16
	modDate          uint16
	crc32            uint32
	compressedSize   uint32
	uncompressedSize uint32
	nameLen          uint16
	extraLen         uint16
	commentLen       uint16
	diskStart        uint16
	internalAttrs    uint16
	externalAttrs    uint32
	localOffset      uint32
}

func (h *centralHeader) appendTo(b []byte) []byte {
	b = le.AppendUint32(b, centralHeaderSignature)
	b = le.AppendUint16(b, h.versionMadeBy)
	b = le.AppendUint16(b, h.versionNeeded)
	b = le.AppendUint16(b, h.flags)
	b = le.AppendUint16(b, h.method)
	b = le.AppendUint16(b, h.modTime)
	b = le.AppendUint16(b, h.modDate)
	b = le.AppendUint32(b, h.crc32)
	b = le.AppendUint32(b, h.compressedSize)
	b = le.AppendUint32(b, h.uncompressedSize)
	b = le.AppendUint16(b, h.nameLen)
	b = le.AppendUint16(b, h.extraLen)
	b = le.AppendUint16(b, h.commentLen)
	b = le.AppendUint16(b, h.diskStart)
	b = le.AppendUint16(b, h.internalAttrs)
	b = le.AppendUint32(b, h.externalAttrs)
	b = le.AppendUint32(b, h.localOffset)
	return b
}

// parseCentralHeader decodes a central directory record from b, which must
// hold at least centralHeaderLen bytes and start with the signature.
func parseCentralHeader(b []byte) centralHeader {
	return centralHeader{
		versionMadeBy:    le.Uint16(b[4:]),
		versionNeeded:    le.Uint16(b[6:]),
		flags:            le.Uint16(b[8:]),
		method:           le.Uint16(b[10:]),
		modTime:          le.Uint16(b[12:]),
		modDate:          le.Uint16(b[14:]),
		crc32:            le.Uint32(b[16:]),
		compressedSize:   le.Uint32(b[20:]),
		uncompressedSize: le.Uint32(b[24:]),
		nameLen:          le.Uint16(b[28:]),
		extraLen:         le.Uint16(b[30:]),
		commentLen:       le.Uint16(b[32:]),
		diskStart:        le.Uint16(b[34:]),
		internalAttrs:    le.Uint16(b[36:]),
		externalAttrs:    le.Uint32(b[38:]),
		localOffset:      le.Uint32(b[42:]),
	}
}

// recordLen is the total size of the record including variable fields.
func (h *centralHeader) recordLen() uint64 {
	return centralHeaderLen + uint64(h.nameLen) + uint64(h.extraLen) + uint64(h.commentLen)
}

// endRecord is the end-of-central-directory record.
type endRecord struct {
	diskNumber  uint16
	cdDisk      uint16
	countOnDisk uint16
	count       uint16
	cdSize      uint32
	cdOffset    uint32
	commentLen  uint16
}

func (r *endRecord) appendTo(b []byte) []byte {
	b = le.AppendUint32(b, endSignature)
	b = le.AppendUint16(b, r.diskNumber)
	b = le.AppendUint16(b, r.cdDisk)
	b = le.AppendUint16(b, r.countOnDisk)
	b = le.AppendUint16(b, r.count)
	b = le.AppendUint32(b, r.cdSize)
	b = le.AppendUint32(b, r.cdOffset)
	b = le.AppendUint16(b, r.commentLen)
	return b
}

// parseEndRecord decodes an end record from b, which must hold at least
// endRecordLen bytes and start with the signature.
func parseEndRecord(b []byte) endRecord {
	return endRecord{
		diskNumber:  le.Uint16(b[4:]),
		cdDisk:      le.Uint16(b[6:]),
		countOnDisk: le.Uint16(b[8:]),
		count:       le.Uint16(b[10:]),
		cdSize:      le.Uint32(b[12:]),
		cdOffset:    le.Uint32(b[16:]),
		commentLen:  le.Uint16(b[20:]),
	}
}
