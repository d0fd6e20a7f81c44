package parser

import "fmt"

// TokenType classifies a lexical token.
type TokenType int

const (
	End TokenType = iota
	Instruction
	AddressingMode
	Value
	Register
	Label
	Separator
	LeftBrace
	RightBrace
	AssemblyDirective
)

var tokenTypeNames = map[TokenType]string{
	End:               "End Of Statement",
	Instruction:       "Instruction",
	AddressingMode:    "Addressing Mode",
	Value:             "Value",
	Register:          "Register",
	Label:             "Label",
	Separator:         "Operand Separator",
	LeftBrace:         "Left Curly Brace",
	RightBrace:        "Right Curly Brace",
	AssemblyDirective: "Assembly Directive",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexeme with its classification and source position.
type Token struct {
	Type   TokenType
	Value  string
	Row    int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Value, t.Row, t.Column)
}
