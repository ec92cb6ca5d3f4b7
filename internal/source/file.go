// Package source provides addressable source text and the span values
// used throughout lexing, parsing, and diagnostics.
package source

import "strings"

// File is a named, line-indexed source buffer.
type File struct {
	Path string
	Text string

	// lineStarts[i] is the byte offset of the first character of line i+1.
	lineStarts []int
}

// NewFile builds a File and precomputes its line index.
func NewFile(path, text string) *File {
	f := &File{Path: path, Text: text}
	f.lineStarts = []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// LineCount returns the number of lines in the file (at least 1).
func (f *File) LineCount() int {
	return len(f.lineStarts)
}

// Line returns the text of the given 1-based line number, without its
// trailing newline. Out-of-range lines return "".
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := len(f.Text)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	if end < start {
		end = start
	}
	return strings.TrimSuffix(f.Text[start:end], "\r")
}

// End returns the position immediately after the last character of the
// file, as a 1-based (line, char) pair.
func (f *File) End() (line, char int) {
	line = len(f.lineStarts)
	lineStart := f.lineStarts[line-1]
	char = len(f.Text) - lineStart + 1
	return line, char
}
