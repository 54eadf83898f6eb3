// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pattern

import (
	"errors"
	"fmt"
)

// Parse errors. InvalidCharError carries the byte offset of the offending
// character; the sentinels cover the structural failures.
var (
	// ErrEmptyName is returned when a ":" or "*" is not followed by an
	// identifier, or NewPattern receives a segment with an empty value.
	ErrEmptyName = errors.New("pattern: empty parameter name")

	// ErrWildcardNotLast is returned when a wildcard segment is followed by
	// further segments.
	ErrWildcardNotLast = errors.New("pattern: wildcard must be the final segment")
)

// InvalidCharError reports a character that is not valid at its position in
// a path template.
type InvalidCharError struct {
	Pos  int  // byte offset into the source string
	Char byte // the offending character
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("pattern: invalid character %q at position %d", e.Char, e.Pos)
}

// Grammar character classes.
//
//	constant := (ALNUM | "_" | "." | "-" | "~")+
//	ident    := (ALPHA | "_") (ALNUM | "_")*
func isConstantChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '-' || c == '~'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// Parse lexes a path template into a Pattern.
//
// The leading slash is optional and discarded; a single trailing slash is
// permitted. "" and "/" both yield the root pattern. "*name" alone yields a
// single wildcard. A wildcard anywhere but the last position fails with
// ErrWildcardNotLast.
func Parse(src string) (Pattern, error) {
	pos := 0
	if pos < len(src) && src[pos] == '/' {
		pos++
	}

	var segments []Segment
	for pos < len(src) {
		c := src[pos]
		switch {
		case c == ':':
			pos++
			name, next, err := ident(src, pos)
			if err != nil {
				return Pattern{}, err
			}
			segments = append(segments, Param(name))
			pos = next

		case c == '*':
			pos++
			name, next, err := ident(src, pos)
			if err != nil {
				return Pattern{}, err
			}
			segments = append(segments, Wildcard(name))
			pos = next
			// Anything after the wildcard other than a sole trailing slash
			// would put segments behind it.
			if pos < len(src) && !(src[pos] == '/' && pos == len(src)-1) {
				return Pattern{}, ErrWildcardNotLast
			}
			return Pattern{segments: segments}, nil

		case isConstantChar(c):
			start := pos
			for pos < len(src) && isConstantChar(src[pos]) {
				pos++
			}
			segments = append(segments, Constant(src[start:pos]))

		default:
			return Pattern{}, &InvalidCharError{Pos: pos, Char: c}
		}

		// Segment boundary: either end of input, a trailing slash, or a
		// slash followed by the next segment.
		if pos == len(src) {
			break
		}
		if src[pos] != '/' {
			return Pattern{}, &InvalidCharError{Pos: pos, Char: src[pos]}
		}
		pos++
	}

	return Pattern{segments: segments}, nil
}

// MustParse is like Parse but panics on error. Use it for compile-time
// constant templates.
func MustParse(src string) Pattern {
	p, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("pattern.MustParse(%q): %v", src, err))
	}
	return p
}

// ident consumes an identifier starting at pos and returns it along with the
// position of the first byte after it.
func ident(src string, pos int) (string, int, error) {
	if pos >= len(src) || !isIdentStart(src[pos]) {
		if pos < len(src) && src[pos] != '/' {
			return "", 0, &InvalidCharError{Pos: pos, Char: src[pos]}
		}
		return "", 0, ErrEmptyName
	}
	start := pos
	for pos < len(src) && isIdentChar(src[pos]) {
		pos++
	}
	return src[start:pos], pos, nil
}
