// Package lexer converts a source buffer into a token stream with
// attached spans, per spec §4.1. Lexing is total: it never aborts, even
// on unrecognized input — unknown runs are reported and skipped so later
// phases always receive a complete, EOF-terminated stream.
package lexer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/source"
)

type regexHandler func(lex *lexerState, match string)

type pattern struct {
	regex   *regexp.Regexp
	handler regexHandler
}

// lexerState is the mutable cursor used only while producing the
// immutable Token slice Tokenize returns; callers never see it.
type lexerState struct {
	file     *source.File
	text     string
	index    int
	line     int
	char     int
	tokens   []Token
	issues   diag.Bag
	patterns []pattern
}

func (l *lexerState) pos() (line, char int) { return l.line, l.char }

func (l *lexerState) remainder() string { return l.text[l.index:] }

func (l *lexerState) atEOF() bool { return l.index >= len(l.text) }

func (l *lexerState) advanceBy(n int) {
	for i := 0; i < n; {
		r, size := utf8.DecodeRuneInString(l.text[l.index:])
		l.index += size
		i += size
		if r == '\n' {
			l.line++
			l.char = 1
		} else {
			l.char++
		}
	}
}

func (l *lexerState) span(startLine, startChar int) source.Span {
	return source.New(l.file.Path, startLine, startChar, l.line, l.char)
}

func (l *lexerState) push(kind Kind, text string, startLine, startChar int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Span: l.span(startLine, startChar)})
}

var numberPattern = regexp.MustCompile(`^(?:0x[0-9a-fA-F]+|0o[0-7]+|0b[01]+|\d+\.\d+|\d+)`)
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)
var stringPattern = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)
var wsPattern = regexp.MustCompile(`^[ \t\r\n]+`)
var lineCommentPattern = regexp.MustCompile(`^//[^\n]*`)
var blockCommentPattern = regexp.MustCompile(`^/\*[\s\S]*?\*/`)

func defaultHandler(kind Kind, literal string) regexHandler {
	return func(l *lexerState, match string) {
		startLine, startChar := l.pos()
		l.advanceBy(len(match))
		l.push(kind, literal, startLine, startChar)
	}
}

func skipHandler(l *lexerState, match string) {
	l.advanceBy(len(match))
}

func identifierHandler(l *lexerState, match string) {
	startLine, startChar := l.pos()
	l.advanceBy(len(match))
	if kw, ok := keywords[match]; ok {
		l.push(kw, match, startLine, startChar)
		return
	}
	l.push(IDENT, match, startLine, startChar)
}

func numberHandler(l *lexerState, match string) {
	startLine, startChar := l.pos()
	l.advanceBy(len(match))
	span := l.span(startLine, startChar)
	if strings.Contains(match, ".") {
		v, _ := strconv.ParseFloat(match, 64)
		l.tokens = append(l.tokens, Token{Kind: FLOAT, Text: match, Span: span, FloatValue: v})
		return
	}
	v, err := strconv.ParseInt(match, 0, 64)
	if err != nil {
		l.issues.Error(diag.CodeBadCharacter, span, "integer literal '"+match+"' out of range")
	}
	l.tokens = append(l.tokens, Token{Kind: INT, Text: match, Span: span, IntValue: v})
}

func stringHandler(l *lexerState, match string) {
	startLine, startChar := l.pos()
	l.advanceBy(len(match))
	span := l.span(startLine, startChar)
	raw := match[1 : len(match)-1]
	value := unescape(raw)
	l.tokens = append(l.tokens, Token{Kind: STRING, Text: match, Span: span, StringValue: value})
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func buildPatterns() []pattern {
	return []pattern{
		{wsPattern, skipHandler},
		{blockCommentPattern, skipHandler},
		{lineCommentPattern, skipHandler},
		{stringPattern, stringHandler},
		{numberPattern, numberHandler},
		{identPattern, identifierHandler},
		{regexp.MustCompile(`^\+\+`), defaultHandler(PLUS_PLUS, "++")},
		{regexp.MustCompile(`^--`), defaultHandler(MINUS_MINUS, "--")},
		{regexp.MustCompile(`^==`), defaultHandler(EQ, "==")},
		{regexp.MustCompile(`^!=`), defaultHandler(NEQ, "!=")},
		{regexp.MustCompile(`^<=`), defaultHandler(LE, "<=")},
		{regexp.MustCompile(`^>=`), defaultHandler(GE, ">=")},
		{regexp.MustCompile(`^&&`), defaultHandler(AND_AND, "&&")},
		{regexp.MustCompile(`^\|\|`), defaultHandler(OR_OR, "||")},
		{regexp.MustCompile(`^<`), defaultHandler(LT, "<")},
		{regexp.MustCompile(`^>`), defaultHandler(GT, ">")},
		{regexp.MustCompile(`^=`), defaultHandler(ASSIGN, "=")},
		{regexp.MustCompile(`^\+`), defaultHandler(PLUS, "+")},
		{regexp.MustCompile(`^-`), defaultHandler(MINUS, "-")},
		{regexp.MustCompile(`^\*`), defaultHandler(STAR, "*")},
		{regexp.MustCompile(`^/`), defaultHandler(SLASH, "/")},
		{regexp.MustCompile(`^%`), defaultHandler(PERCENT, "%")},
		{regexp.MustCompile(`^!`), defaultHandler(BANG, "!")},
		{regexp.MustCompile(`^\(`), defaultHandler(LPAREN, "(")},
		{regexp.MustCompile(`^\)`), defaultHandler(RPAREN, ")")},
		{regexp.MustCompile(`^\{`), defaultHandler(LBRACE, "{")},
		{regexp.MustCompile(`^\}`), defaultHandler(RBRACE, "}")},
		{regexp.MustCompile(`^\[`), defaultHandler(LBRACKET, "[")},
		{regexp.MustCompile(`^\]`), defaultHandler(RBRACKET, "]")},
		{regexp.MustCompile(`^,`), defaultHandler(COMMA, ",")},
		{regexp.MustCompile(`^;`), defaultHandler(SEMI, ";")},
		{regexp.MustCompile(`^:`), defaultHandler(COLON, ":")},
		{regexp.MustCompile(`^\.`), defaultHandler(DOT, ".")},
	}
}

// Tokenize lexes the given file in full, returning every token produced
// (EOF-terminated) together with any lexical issues. It never aborts: an
// unrecognized byte is reported as CodeBadCharacter and skipped one rune
// at a time until a pattern matches again, so the function is total over
// any input (spec §8 property 2).
func Tokenize(file *source.File) ([]Token, *diag.Bag) {
	l := &lexerState{file: file, text: file.Text, line: 1, char: 1, patterns: buildPatterns()}

	for !l.atEOF() {
		matched := false
		for _, p := range l.patterns {
			if loc := p.regex.FindStringIndex(l.remainder()); loc != nil && loc[0] == 0 {
				p.handler(l, l.remainder()[loc[0]:loc[1]])
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		startLine, startChar := l.pos()
		if strings.HasPrefix(l.remainder(), `"`) {
			rest := l.remainder()
			end := strings.IndexAny(rest[1:], "\n")
			if end < 0 {
				end = len(rest) - 1
			}
			l.issues.Error(diag.CodeUnterminatedLiteral, l.span(startLine, startChar), "unterminated string literal")
			l.advanceBy(end + 1)
			continue
		}

		r, size := utf8.DecodeRuneInString(l.remainder())
		l.issues.Error(diag.CodeBadCharacter, l.span(startLine, startChar),
			"unrecognized character '"+string(r)+"'")
		l.advanceBy(size)
	}

	line, char := l.pos()
	l.tokens = append(l.tokens, Token{Kind: EOF, Text: "", Span: source.New(file.Path, line, char, line, char)})

	return l.tokens, &l.issues
}
