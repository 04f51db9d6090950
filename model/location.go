package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SourceLocation is a 1-based line:column position inside a manifest value.
type SourceLocation struct {
	Line   int
	Column int

	lineStart int // byte offset of the line start
}

// CalcSourceLocation converts a byte offset into a line/column position.
// CR, LF and CRLF all count as a single line break; a leading UTF-8 BOM is
// skipped.
func CalcSourceLocation(buf string, offset int) *SourceLocation {
	cur := 0
	if strings.HasPrefix(buf, "\xef\xbb\xbf") {
		cur = 3
	}
	if offset > len(buf) {
		offset = len(buf)
	}

	loc := SourceLocation{Line: 1, lineStart: cur}
	for cur < offset {
		c := buf[cur]
		cur++
		switch c {
		case '\r':
			if cur < offset && buf[cur] == '\n' {
				cur++
			}
			fallthrough
		case '\n':
			loc.Line++
			loc.lineStart = cur
		}
	}
	if offset < loc.lineStart {
		offset = loc.lineStart
	}
	loc.Column = 1 + utf8.RuneCountInString(buf[loc.lineStart:offset])
	return &loc
}

func (sl *SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", sl.Line, sl.Column)
}
