// Package segment translates display characters into seven-segment patterns.
package segment

import (
	"strings"

	"github.com/pkg/errors"
)

// positions of segments, H is the decimal point
const (
	A = iota
	B
	C
	D
	E
	F
	G
	H
)

// Count is the number of physical segment lines, dot included
const Count = 8

// ErrInvalidCharacter is returned for anything outside 0-9, A-F, ' ' and '-'
var ErrInvalidCharacter = errors.New("invalid character")

// Pattern holds the on/off state of segments A through H.
type Pattern [Count]bool

// characters that turn a segment off, one set per segment A-G
var offSets = [G + 1]string{
	A: "14BD -",
	B: "56BCEF -",
	C: "2CEF -",
	D: "147AF -",
	E: "134579 -",
	F: "1237D -",
	G: "017C ",
}

const charset = "0123456789ABCDEF -"

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Valid reports whether c can be encoded.
func Valid(c byte) bool {
	return strings.IndexByte(charset, upper(c)) >= 0
}

// Encode returns the segment pattern for c with the dot set from dot.
// Unknown characters come back blank along with ErrInvalidCharacter.
func Encode(c byte, dot bool) (Pattern, error) {
	var p Pattern

	c = upper(c)
	if !Valid(c) {
		p[H] = dot
		return p, errors.Wrapf(ErrInvalidCharacter, "encode %q", c)
	}

	for i := range p {
		p[i] = true
	}
	for seg, off := range offSets {
		if strings.IndexByte(off, c) >= 0 {
			p[seg] = false
		}
	}
	p[H] = dot

	return p, nil
}

// Mask packs the pattern, bit n is segment n.
func (p Pattern) Mask() byte {
	var m byte
	for i, on := range p {
		if on {
			m |= 1 << uint(i)
		}
	}
	return m
}
