package source

import "fmt"

// Span identifies a region of a source file by 1-based line/char
// coordinates. The end coordinate is exclusive: it names the position
// just past the last character, as the lexer builds token spans, so
// After() lands exactly where the next character would start.
type Span struct {
	File       string
	StartLine  int
	StartChar  int
	EndLine    int
	EndChar    int
}

// New builds a Span covering [startLine:startChar, endLine:endChar] in file.
func New(file string, startLine, startChar, endLine, endChar int) Span {
	return Span{File: file, StartLine: startLine, StartChar: startChar, EndLine: endLine, EndChar: endChar}
}

// Zero reports whether the span carries no position information.
func (s Span) Zero() bool {
	return s.StartLine == 0 && s.StartChar == 0 && s.EndLine == 0 && s.EndChar == 0
}

// Plus returns the smallest span covering both s and other. Both must
// belong to the same file; if either is zero, the other is returned
// unchanged (useful when folding over an optional list of sub-spans).
func (s Span) Plus(other Span) Span {
	if s.Zero() {
		return other
	}
	if other.Zero() {
		return s
	}
	result := s
	if before(other.StartLine, other.StartChar, s.StartLine, s.StartChar) {
		result.StartLine, result.StartChar = other.StartLine, other.StartChar
	}
	if before(s.EndLine, s.EndChar, other.EndLine, other.EndChar) {
		result.EndLine, result.EndChar = other.EndLine, other.EndChar
	}
	return result
}

// Before returns the zero-width span immediately preceding s.
func (s Span) Before() Span {
	return Span{File: s.File, StartLine: s.StartLine, StartChar: s.StartChar, EndLine: s.StartLine, EndChar: s.StartChar}
}

// After returns the zero-width span immediately following s.
func (s Span) After() Span {
	return Span{File: s.File, StartLine: s.EndLine, StartChar: s.EndChar, EndLine: s.EndLine, EndChar: s.EndChar}
}

func before(line1, char1, line2, char2 int) bool {
	if line1 != line2 {
		return line1 < line2
	}
	return char1 < char2
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.File, s.StartLine, s.StartChar, s.EndLine, s.EndChar)
}

// Less orders spans by (startLine asc, startChar asc, endLine desc,
// endChar desc), so enclosing spans precede the spans they enclose on
// ties.
func (s Span) Less(other Span) bool {
	if s.StartLine != other.StartLine {
		return s.StartLine < other.StartLine
	}
	if s.StartChar != other.StartChar {
		return s.StartChar < other.StartChar
	}
	if s.EndLine != other.EndLine {
		return s.EndLine > other.EndLine
	}
	return s.EndChar > other.EndChar
}
