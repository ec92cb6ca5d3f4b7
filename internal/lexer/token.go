package lexer

import "github.com/colang-project/colang/internal/source"

// Kind tags a Token's grammatical category, mirroring spec §3's "tagged
// variant over {keyword kinds, identifier, integer literal, floating
// literal, string literal, punctuation, operators, end-of-file}".
type Kind int

const (
	EOF Kind = iota
	IDENT
	INT
	FLOAT
	STRING

	// Keywords
	KW_STRUCT
	KW_NATIVE
	KW_RETURN
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_TRUE
	KW_FALSE
	KW_VOID

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMI
	COLON
	DOT

	// Operators
	ASSIGN
	EQ
	NEQ
	LT
	GT
	LE
	GE
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	PLUS_PLUS
	MINUS_MINUS
	AND_AND
	OR_OR
	BANG

	ILLEGAL
)

var keywords = map[string]Kind{
	"struct": KW_STRUCT,
	"native": KW_NATIVE,
	"return": KW_RETURN,
	"if":     KW_IF,
	"else":   KW_ELSE,
	"while":  KW_WHILE,
	"true":   KW_TRUE,
	"false":  KW_FALSE,
	"void":   KW_VOID,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	EOF: "end of file", IDENT: "identifier", INT: "integer literal",
	FLOAT: "floating literal", STRING: "string literal",
	KW_STRUCT: "'struct'", KW_NATIVE: "'native'", KW_RETURN: "'return'",
	KW_IF: "'if'", KW_ELSE: "'else'", KW_WHILE: "'while'",
	KW_TRUE: "'true'", KW_FALSE: "'false'", KW_VOID: "'void'",
	LPAREN: "'('", RPAREN: "')'", LBRACE: "'{'", RBRACE: "'}'",
	LBRACKET: "'['", RBRACKET: "']'", COMMA: "','", SEMI: "';'",
	COLON: "':'", DOT: "'.'",
	ASSIGN: "'='", EQ: "'=='", NEQ: "'!='", LT: "'<'", GT: "'>'",
	LE: "'<='", GE: "'>='", PLUS: "'+'", MINUS: "'-'", STAR: "'*'",
	SLASH: "'/'", PERCENT: "'%'", PLUS_PLUS: "'++'", MINUS_MINUS: "'--'",
	AND_AND: "'&&'", OR_OR: "'||'", BANG: "'!'", ILLEGAL: "illegal token",
}

// Token is an immutable lexical unit with its source span and, where
// applicable, its literal value.
type Token struct {
	Kind Kind
	Text string // the raw lexeme (identifier name, operator spelling, ...)
	Span source.Span

	IntValue    int64
	FloatValue  float64
	StringValue string
}

func (t Token) IsEOF() bool { return t.Kind == EOF }
