package lexer

// Kind classifies a token. The zero value is Eof, so a zero Token is the
// end-of-stream sentinel.
type Kind int

const (
	// Special
	Eof Kind = iota

	// Literals and identifiers
	BooleanLiteral
	CharLiteral
	StringLiteral
	InterpolatedStringLiteral
	NumberLiteral
	Identifier

	// Binding keywords
	Var
	Final
	As
	Assign // =

	// Branching and looping keywords
	If
	Else
	While
	For
	Switch
	Select
	Case
	Default

	// Declaration-head keywords
	Class
	Interface
	Fun
	Module
	Import
	Package

	// Modifiers
	Public
	Override
	Operator
	Extern
	Embed
	Ignorable

	// Grouping
	OpenParentheses
	CloseParentheses
	OpenBrace
	CloseBrace
	OpenSquareBracket
	CloseSquareBracket

	// Structural punctuation
	Dot
	Colon
	SubItemSeparator // ,
	LambdaArrow      // ->
	Rest             // ...

	// Operators
	Add
	Subtract
	Multiply
	Divide
	Modulo
	Equals
	NotEquals
	Not
	LessThan
	LessThanOrEquals
	GreaterThan
	GreaterThanOrEquals
	And
	Or
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	BitwiseNot
	ShiftLeft
	ShiftRight
	Pipe         // |>
	Compose      // ~>
	MethodHandle // ::

	// Reserved for future use, recognized but rejected by the grammar
	Continue
	Do
	Extends
	Super
	Throw
	Timeout
)

var kindStrings = map[Kind]string{
	Eof:                       "EOF",
	BooleanLiteral:            "boolean",
	CharLiteral:               "char",
	StringLiteral:             "string",
	InterpolatedStringLiteral: "interpolated string",
	NumberLiteral:             "number",
	Identifier:                "identifier",
	Var:                       "var",
	Final:                     "final",
	As:                        "as",
	Assign:                    "=",
	If:                        "if",
	Else:                      "else",
	While:                     "while",
	For:                       "for",
	Switch:                    "switch",
	Select:                    "select",
	Case:                      "case",
	Default:                   "default",
	Class:                     "class",
	Interface:                 "interface",
	Fun:                       "fun",
	Module:                    "module",
	Import:                    "import",
	Package:                   "package",
	Public:                    "public",
	Override:                  "override",
	Operator:                  "operator",
	Extern:                    "extern",
	Embed:                     "embed",
	Ignorable:                 "ignorable",
	OpenParentheses:           "(",
	CloseParentheses:          ")",
	OpenBrace:                 "{",
	CloseBrace:                "}",
	OpenSquareBracket:         "[",
	CloseSquareBracket:        "]",
	Dot:                       ".",
	Colon:                     ":",
	SubItemSeparator:          ",",
	LambdaArrow:               "->",
	Rest:                      "...",
	Add:                       "+",
	Subtract:                  "-",
	Multiply:                  "*",
	Divide:                    "/",
	Modulo:                    "%",
	Equals:                    "==",
	NotEquals:                 "!=",
	Not:                       "!",
	LessThan:                  "<",
	LessThanOrEquals:          "<=",
	GreaterThan:               ">",
	GreaterThanOrEquals:       ">=",
	And:                       "&&",
	Or:                        "||",
	BitwiseAnd:                "&",
	BitwiseOr:                 "|",
	BitwiseXor:                "^",
	BitwiseNot:                "~",
	ShiftLeft:                 "<<",
	ShiftRight:                ">>",
	Pipe:                      "|>",
	Compose:                   "~>",
	MethodHandle:              "::",
	Continue:                  "continue",
	Do:                        "do",
	Extends:                   "extends",
	Super:                     "super",
	Throw:                     "throw",
	Timeout:                   "timeout",
}

func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "unknown"
}

// keywords maps source words to keyword kinds. Words not present lex as
// identifiers.
var keywords = map[string]Kind{
	"var":       Var,
	"final":     Final,
	"as":        As,
	"if":        If,
	"else":      Else,
	"while":     While,
	"for":       For,
	"switch":    Switch,
	"select":    Select,
	"case":      Case,
	"default":   Default,
	"class":     Class,
	"interface": Interface,
	"fun":       Fun,
	"module":    Module,
	"import":    Import,
	"package":   Package,
	"public":    Public,
	"override":  Override,
	"operator":  Operator,
	"extern":    Extern,
	"embed":     Embed,
	"ignorable": Ignorable,
	"continue":  Continue,
	"do":        Do,
	"extends":   Extends,
	"super":     Super,
	"throw":     Throw,
	"timeout":   Timeout,
}

// Number is a numeric literal split into its integral and fractional parts,
// e.g. 123.45 is {123, 45}. The integral part carries the sign once the
// grammar folds unary minus into the literal.
type Number struct {
	Integral int64
	Fraction uint64
}

// Token is one lexical unit. It is a comparable value: two tokens are equal
// exactly when their kind and payload match, and a Token can key a map.
// Payload fields are only meaningful for the literal and identifier kinds.
type Token struct {
	Kind Kind
	Text string // identifier name, string/interpolated content, or decoded char
	Num  Number
	Bool bool
}

// Ident returns an identifier token for name.
func Ident(name string) Token {
	return Token{Kind: Identifier, Text: name}
}

// Str returns a string literal token holding the decoded content.
func Str(content string) Token {
	return Token{Kind: StringLiteral, Text: content}
}

// Interpolated returns an interpolated-string literal token holding the raw
// body between the backticks.
func Interpolated(content string) Token {
	return Token{Kind: InterpolatedStringLiteral, Text: content}
}

// Char returns a character literal token.
func Char(c rune) Token {
	return Token{Kind: CharLiteral, Text: string(c)}
}

// Num returns a number literal token.
func Num(integral int64, fraction uint64) Token {
	return Token{Kind: NumberLiteral, Num: Number{Integral: integral, Fraction: fraction}}
}

// Bool returns a boolean literal token.
func Bool(b bool) Token {
	return Token{Kind: BooleanLiteral, Bool: b}
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier, StringLiteral, InterpolatedStringLiteral, CharLiteral:
		return t.Text
	default:
		return t.Kind.String()
	}
}

// Position locates a token in the source text. Offset counts runes from the
// start; Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Lexed is a token with the context needed for lossless reconstruction: the
// verbatim whitespace and comment run that preceded it, and where it starts.
// Buffer matching only ever compares the Token field; trivia and position are
// carried, not compared.
type Lexed struct {
	Token    Token
	Trivia   string
	Position Position
}
