// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"unicode"
	"unicode/utf8"
)

// A parser splits a unit such as "ms-stddev/op" into word tokens.
// Tokens are maximal runs of letters; everything else separates
// them. A "/" moves the parser into the denominator.
type parser struct {
	unit string
	off  int

	// tok is the current token and pos its byte offset in unit.
	tok string
	pos int
	// denom is set once the parser has passed a "/".
	denom bool
}

func newParser(unit string) *parser {
	return &parser{unit: unit}
}

// next advances to the next token and reports whether there is one.
func (p *parser) next() bool {
	// Skip separators.
	for p.off < len(p.unit) {
		r, size := utf8.DecodeRuneInString(p.unit[p.off:])
		if unicode.IsLetter(r) {
			break
		}
		if r == '/' {
			p.denom = true
		}
		p.off += size
	}
	if p.off >= len(p.unit) {
		return false
	}
	start := p.off
	for p.off < len(p.unit) {
		r, size := utf8.DecodeRuneInString(p.unit[p.off:])
		if !unicode.IsLetter(r) {
			break
		}
		p.off += size
	}
	p.tok, p.pos = p.unit[start:p.off], start
	return true
}
