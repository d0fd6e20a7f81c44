package parser

import (
	"strings"

	"github.com/chadsembler/chadsembler/arch"
	"github.com/chadsembler/chadsembler/diag"
)

const (
	separatorChar      = ','
	leftScopeChar      = '{'
	rightScopeChar     = '}'
	lineBreakChar      = '\n'
	directivePrefix    = '!'
	commentPrefix      = ';'
	valueBeginChars    = "+-1234567890"
	valueChars         = "1234567890"
	valueSignChars     = "+-"
	labelChars         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_1234567890"
	whitespaceChars    = " \t\n"
)

// Lexer tokenises Chadsembly source into a flat token stream. Comments and
// in-source configuration directives are skipped entirely; the parser never
// sees them.
type Lexer struct {
	source string
	sink   *diag.Sink
	row    int
	column int
}

// NewLexer creates a Lexer over source.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		sink:   diag.NewSink("Lexer Errors:"),
		row:    1,
		column: 1,
	}
}

// Run tokenises the source and returns the token stream. A trailing End
// token is always appended, even for empty source.
func (l *Lexer) Run() ([]Token, error) {
	var tokens []Token
	i := 0
	length := len(l.source)

	for i < length {
		current := l.source[i]

		switch {
		case current == directivePrefix || current == commentPrefix:
			i = l.skipLine(i)
			if len(tokens) > 0 {
				tokens = appendEnd(tokens, l.row, l.column)
			}

		case current == lineBreakChar:
			if len(tokens) > 0 && tokens[len(tokens)-1].Type != End {
				tokens = append(tokens, Token{Type: End, Value: "\n", Row: l.row, Column: l.column})
			}

		case current == leftScopeChar:
			tokens = append(tokens, Token{Type: LeftBrace, Value: "{", Row: l.row, Column: l.column})

		case current == rightScopeChar:
			tokens = append(tokens, Token{Type: RightBrace, Value: "}", Row: l.row, Column: l.column})

		case current == separatorChar:
			tokens = append(tokens, Token{Type: Separator, Value: ",", Row: l.row, Column: l.column})

		case isAddressingSymbol(current):
			tokens = append(tokens, Token{Type: AddressingMode, Value: string(current), Row: l.row, Column: l.column})

		case !strings.ContainsRune(whitespaceChars, rune(current)):
			startRow, startColumn := l.row, l.column
			token, next := l.readToken(i)
			i = next - 1
			l.column += len(token.Value) - 1
			token.Row, token.Column = startRow, startColumn
			tokens = append(tokens, token)
		}

		if i < length && l.source[i] == lineBreakChar {
			l.row++
			l.column = 0
		}

		i++
		l.column++
	}

	tokens = appendEnd(tokens, l.row, l.column)

	return tokens, l.sink.AsFatal()
}

func appendEnd(tokens []Token, row, column int) []Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Type == End {
		return tokens
	}
	return append(tokens, Token{Type: End, Value: "\n", Row: row, Column: column})
}

// isAddressingSymbol reports whether b is one of the single-character
// addressing mode symbols (%, @, >, #).
func isAddressingSymbol(b byte) bool {
	_, ok := arch.AddressingModes[string(b)]
	return ok
}

// skipLine advances index to the next line break (or to the last character
// of the source), treating the rest of the current line as a comment or
// directive.
func (l *Lexer) skipLine(i int) int {
	for i+1 < len(l.source) && l.source[i] != lineBreakChar {
		i++
	}
	return i
}

// readToken reads a single lexeme starting at i and classifies it,
// recording any lexical diagnostics against the token's position.
func (l *Lexer) readToken(i int) (Token, int) {
	lower := i
	length := len(l.source)

	for i < length {
		c := l.source[i]
		if c == commentPrefix || c == directivePrefix || c == separatorChar ||
			strings.ContainsRune(whitespaceChars, rune(c)) ||
			c == leftScopeChar || c == rightScopeChar ||
			isAddressingSymbol(c) {
			break
		}
		i++
	}

	raw := strings.ToUpper(l.source[lower:i])

	if len(raw) > 0 && strings.ContainsRune(valueBeginChars, rune(raw[0])) {
		l.validateValue(raw)
		return Token{Type: Value, Value: raw}, i
	}

	if digits, ok := asGPR(raw); ok {
		return Token{Type: Register, Value: digits}, i
	}

	return l.classify(raw), i
}

// asGPR reports whether token is a general purpose register reference such
// as "REG5" or "R12", returning its digit suffix.
func asGPR(token string) (string, bool) {
	if len(token) == 0 {
		return "", false
	}

	end := len(token)
	for end > 0 && token[end-1] >= '0' && token[end-1] <= '9' {
		end--
	}

	prefix, digits := token[:end], token[end:]
	if digits == "" || !arch.GPRVariants[prefix] {
		return "", false
	}

	return digits, true
}

// classify determines a non-value, non-register token's type and, for an
// addressing mode spelled out as a word, normalises it to its symbol.
func (l *Lexer) classify(token string) Token {
	if _, ok := arch.LookupInstruction(token); ok {
		return Token{Type: Instruction, Value: token}
	}

	if _, ok := arch.SpecialRegisters[token]; ok {
		return Token{Type: Register, Value: token}
	}

	if mode, ok := arch.AddressingModes[token]; ok {
		return Token{Type: AddressingMode, Value: mode.Symbol}
	}

	if token == arch.DAT {
		return Token{Type: AssemblyDirective, Value: token}
	}

	l.validateLabel(token)
	return Token{Type: Label, Value: token}
}

func (l *Lexer) validateValue(token string) {
	body := token
	if len(body) > 0 && strings.ContainsRune(valueSignChars, rune(body[0])) {
		body = body[1:]
	}

	for _, c := range body {
		if !strings.ContainsRune(valueChars, c) {
			l.sink.Record(l.row, l.column, diag.InvalidValue, "A value can only contain digits")
			return
		}
	}
}

func (l *Lexer) validateLabel(token string) {
	for _, c := range token {
		if !strings.ContainsRune(labelChars, c) {
			l.sink.Record(l.row, l.column, diag.InvalidLabel, "A Label can only contain letters, digits and underscores")
			return
		}
	}
}
