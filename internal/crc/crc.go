// Package crc implements the CRC-32 checksum used by ZIP archives
// (reflected IEEE polynomial, pre- and post-inverted).
package crc

import "hash"

// Polynomial is the reversed IEEE 802.3 polynomial.
const Polynomial = 0xEDB88320

// Size is the size of a CRC-32 checksum in bytes.
const Size = 4

// table is computed once at package initialization and never modified.
var table = makeTable(Polynomial)

func makeTable(poly uint32) *[256]uint32 {
	t := new([256]uint32)
	for i := range t {
		c := uint32(i)
		for range 8 {
			if c&1 == 1 {
				c = poly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}

// Checksum returns the CRC-32 of p.
func Checksum(p []byte) uint32 {
	return Update(0, p)
}

// Update returns the result of adding the bytes in p to crc.
func Update(crc uint32, p []byte) uint32 {
	crc = ^crc
	for _, b := range p {
		crc = table[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}

// digest is a streaming CRC-32.
type digest struct {
	crc uint32
}

var _ hash.Hash32 = (*digest)(nil)

// New returns a hash.Hash32 computing the CRC-32 checksum.
func New() hash.Hash32 {
	return &digest{}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.crc = 0 }

func (d *digest) Write(p []byte) (int, error) {
	d.crc = Update(d.crc, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.crc }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}
