package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/colang-project/colang/colors"
	"github.com/colang-project/colang/internal/source"
)

// Locale selects the language diagnostic kind labels are rendered in.
// Per spec §6: English, Russian, and Belarusian are supported, with
// English as the fallback for anything else.
type Locale string

const (
	LocaleEnglish    Locale = "en"
	LocaleRussian    Locale = "ru"
	LocaleBelarusian Locale = "be"
)

var kindLabels = map[Locale]map[Severity]string{
	LocaleEnglish: {Error: "error", Warning: "warning"},
	LocaleRussian: {Error: "ошибка", Warning: "предупреждение"},
	LocaleBelarusian: {Error: "памылка", Warning: "папярэджанне"},
}

func kindLabel(locale Locale, sev Severity) string {
	labels, ok := kindLabels[locale]
	if !ok {
		labels = kindLabels[LocaleEnglish]
	}
	label, ok := labels[sev]
	if !ok {
		label = kindLabels[LocaleEnglish][sev]
	}
	return label
}

var noteLabels = map[Locale]string{
	LocaleEnglish:    "note",
	LocaleRussian:    "примечание",
	LocaleBelarusian: "заўвага",
}

func noteLabel(locale Locale) string {
	if l, ok := noteLabels[locale]; ok {
		return l
	}
	return noteLabels[LocaleEnglish]
}

// ColorMode mirrors the CLI's --color flag: auto-detect, force on, or
// force off.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Renderer renders a Bag to an io.Writer (normally stderr, per spec §6).
// Separating it from Bag/Issue keeps the structured diagnostics themselves
// free of presentation concerns, so tests assert on Issues, not strings
// (spec §9 design note).
type Renderer struct {
	Locale Locale
	Color  ColorMode
	Files  func(path string) *source.File
}

func (r Renderer) colorEnabled(w io.Writer) bool {
	switch r.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

var severityColor = map[Severity]colors.COLOR{
	Error:   colors.RED,
	Warning: colors.YELLOW,
}

// Render writes every issue in b, already sorted by Bag.Sort, to w.
func (r Renderer) Render(w io.Writer, b *Bag) {
	useColor := r.colorEnabled(w)
	for _, issue := range b.Issues() {
		r.renderOne(w, issue, useColor)
	}
}

func (r Renderer) renderOne(w io.Writer, issue Issue, useColor bool) {
	label := kindLabel(r.Locale, issue.Severity)
	header := fmt.Sprintf("%s:%d:%d: %s: %s",
		issue.Span.File, issue.Span.StartLine, issue.Span.StartChar, label, issue.Message)

	if useColor {
		header = severityColor[issue.Severity].Sprint(header)
	}
	fmt.Fprintln(w, header)

	if r.Files != nil {
		if file := r.Files(issue.Span.File); file != nil {
			fmt.Fprint(w, r.snippet(file, issue.Span, issue.Severity, useColor))
		}
	}

	for _, note := range issue.Notes {
		prefix := noteLabel(r.Locale)
		if note.Span.Zero() {
			fmt.Fprintf(w, "  %s: %s\n", prefix, note.Message)
			continue
		}
		fmt.Fprintf(w, "  %s:%d:%d: %s: %s\n", note.Span.File, note.Span.StartLine, note.Span.StartChar, prefix, note.Message)
	}
}

// snippet renders the offending source lines with a caret-underline (tilde
// characters) under the span, across however many lines it covers.
func (r Renderer) snippet(file *source.File, span source.Span, sev Severity, useColor bool) string {
	var b strings.Builder
	for line := span.StartLine; line <= span.EndLine; line++ {
		text := file.Line(line)
		fmt.Fprintf(&b, "%5d | %s\n", line, text)

		startCol := 1
		if line == span.StartLine {
			startCol = span.StartChar
		}
		endCol := len(text) + 1
		if line == span.EndLine {
			endCol = span.EndChar
		}
		if endCol < startCol {
			endCol = startCol
		}

		underline := strings.Repeat(" ", startCol-1) + "^"
		if width := endCol - startCol; width > 1 {
			underline += strings.Repeat("~", width-1)
		}
		prefix := "      | "
		if useColor {
			underline = severityColor[sev].Sprint(underline)
		}
		fmt.Fprintf(&b, "%s%s\n", prefix, underline)
	}
	return b.String()
}
