// SPDX-License-Identifier: GPL-2.0-or-later

// Package crc implements the 16 bit CCITT checksum (polynomial 0x1021,
// initial value 0xffff).
package crc

const (
	polynomial = 0x1021
	Initial    = 0xffff
)

var table = makeTable(polynomial)

func makeTable(poly uint16) [256]uint16 {
	var t [256]uint16
	for i := range t {
		c := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if c&0x8000 != 0 {
				c = (c << 1) ^ poly
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}

// Update continues the checksum c over p.
func Update(c uint16, p []byte) uint16 {
	for _, v := range p {
		c = table[byte(c>>8)^v] ^ (c << 8)
	}
	return c
}

func Checksum(p []byte) uint16 {
	return Update(Initial, p)
}
