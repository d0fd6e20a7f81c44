package parser

import (
	"fmt"

	"github.com/chadsembler/chadsembler/diag"
)

// possibleNext lists, for each token type, the set of token types that may
// legally follow it. The grammar is purely adjacency-based: no precedence,
// no recursive structure, just "what can come after what".
var possibleNext = map[TokenType][]TokenType{
	End:               {End, Instruction, Label, RightBrace, LeftBrace},
	Instruction:       {End, AddressingMode, Value, Register, Label, RightBrace},
	AddressingMode:    {Value, Register, Label},
	Value:             {End, Separator, RightBrace, LeftBrace},
	Register:          {End, Separator, RightBrace, LeftBrace},
	Label:             {End, Separator, Instruction, RightBrace, LeftBrace, AssemblyDirective},
	Separator:         {AddressingMode, Value, Register, Label},
	RightBrace:        {End},
	LeftBrace:         {End},
	AssemblyDirective: {End, Value},
}

func contains(set []TokenType, t TokenType) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}

// Parse validates that tokens form a syntactically valid token stream:
// every adjacent pair of tokens must be a legal transition, and every '{'
// must be matched by a following '}' with nothing else opened in between.
func Parse(tokens []Token) error {
	sink := diag.NewSink("Parser Errors:")

	if len(tokens) == 0 {
		return sink.AsFatal()
	}

	var openScope *Token
	previous := tokens[len(tokens)-1] // wraps around, matching the original's sentinel

	for i := range tokens {
		token := tokens[i]

		if token.Type == LeftBrace || token.Type == RightBrace {
			validateScope(token, &openScope, sink)
		}

		if !contains(possibleNext[previous.Type], token.Type) {
			recordAdjacencyError(previous, token, sink)
		}

		previous = token
	}

	if openScope != nil {
		sink.Record(openScope.Row, openScope.Column, diag.Syntax, "Block scope was opened but never closed")
	}

	return sink.AsFatal()
}

func validateScope(token Token, openScope **Token, sink *diag.Sink) {
	if token.Type == LeftBrace {
		if *openScope == nil {
			t := token
			*openScope = &t
		} else {
			sink.Record(token.Row, token.Column, diag.Syntax, "Block scope was opened but never closed")
		}
		return
	}

	if *openScope == nil {
		sink.Record(token.Row, token.Column, diag.Syntax, "Block scope was closed but never opened")
	} else {
		*openScope = nil
	}
}

func recordAdjacencyError(first, second Token, sink *diag.Sink) {
	switch {
	case first.Type == End:
		sink.Record(second.Row, second.Column, diag.Syntax,
			fmt.Sprintf("Statement cannot begin with a %s", second.Type))

	case second.Type == End:
		sink.Record(first.Row, first.Column, diag.Syntax,
			fmt.Sprintf("Statement cannot end with a %s", first.Type))

	default:
		sink.Record(second.Row, second.Column, diag.Syntax,
			fmt.Sprintf("%s was found after %s", second.Type, first.Type))
	}
}
