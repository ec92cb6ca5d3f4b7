package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/colang-project/colang/internal/source"
)

func TestRenderPlainHeaderNoColorOnNonTTYWriter(t *testing.T) {
	var buf bytes.Buffer
	var b Bag
	b.Error(CodeUnknownIdentifier, source.New("t.co", 3, 5, 3, 10), "unknown identifier 'x'")

	r := Renderer{Locale: LocaleEnglish, Color: ColorAuto}
	r.Render(&buf, &b)

	out := buf.String()
	if !strings.Contains(out, "t.co:3:5: error: unknown identifier 'x'") {
		t.Errorf("unexpected render output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI escapes for a non-terminal writer under ColorAuto, got %q", out)
	}
}

func TestRenderColorAlwaysAppliesEvenOffTTY(t *testing.T) {
	var buf bytes.Buffer
	var b Bag
	b.Error(CodeUnknownIdentifier, source.New("t.co", 1, 1, 1, 2), "boom")

	r := Renderer{Locale: LocaleEnglish, Color: ColorAlways}
	r.Render(&buf, &b)

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("expected ANSI color codes when Color is ColorAlways, regardless of writer type")
	}
}

func TestRenderLocalizedLabels(t *testing.T) {
	var buf bytes.Buffer
	var b Bag
	b.Error(CodeUnknownIdentifier, source.New("t.co", 1, 1, 1, 2), "boom")

	r := Renderer{Locale: LocaleRussian, Color: ColorNever}
	r.Render(&buf, &b)

	if !strings.Contains(buf.String(), "ошибка") {
		t.Errorf("expected the Russian error label, got %q", buf.String())
	}
}

func TestRenderUnknownLocaleFallsBackToEnglish(t *testing.T) {
	var buf bytes.Buffer
	var b Bag
	b.Warning(CodeUnusedSymbol, source.New("t.co", 1, 1, 1, 2), "unused")

	r := Renderer{Locale: Locale("fr"), Color: ColorNever}
	r.Render(&buf, &b)

	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("expected the English fallback label, got %q", buf.String())
	}
}

func TestRenderWithSourceSnippet(t *testing.T) {
	var buf bytes.Buffer
	var b Bag
	span := source.New("t.co", 1, 5, 1, 6)
	b.Error(CodeUnknownIdentifier, span, "unknown identifier 'x'")

	file := source.NewFile("t.co", "int x = y;\n")
	r := Renderer{
		Locale: LocaleEnglish, Color: ColorNever,
		Files: func(path string) *source.File {
			if path == "t.co" {
				return file
			}
			return nil
		},
	}
	r.Render(&buf, &b)

	out := buf.String()
	if !strings.Contains(out, "int x = y;") {
		t.Errorf("expected the source line in the snippet, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret underline in the snippet, got %q", out)
	}
}

func TestRenderNotesWithAndWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	var b Bag
	b.Add(Issue{
		Severity: Error, Code: CodeDuplicateSymbol,
		Span: source.New("t.co", 2, 1, 2, 2), Message: "already declared",
		Notes: []Note{
			{Span: source.New("t.co", 1, 1, 1, 2), Message: "previous declaration"},
			{Message: "a note with no location"},
		},
	})

	r := Renderer{Locale: LocaleEnglish, Color: ColorNever}
	r.Render(&buf, &b)

	out := buf.String()
	if !strings.Contains(out, "t.co:1:1: note: previous declaration") {
		t.Errorf("expected a located note line, got %q", out)
	}
	if !strings.Contains(out, "note: a note with no location") {
		t.Errorf("expected an unlocated note line, got %q", out)
	}
}
