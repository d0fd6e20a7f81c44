package pools

import "github.com/chadsembler/chadsembler/parser"

// Scope holds one lexical scope's surviving tokens (after variable
// declarations have been stripped out) and the symbol table built from it.
type Scope struct {
	Tokens          []parser.Token
	Symbols         map[string]*Symbol
	NumInstructions int
	NumVariables    int
}

func newScope() *Scope {
	return &Scope{Symbols: make(map[string]*Symbol)}
}
