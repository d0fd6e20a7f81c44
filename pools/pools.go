package pools

import (
	"strconv"

	"github.com/chadsembler/chadsembler/diag"
	"github.com/chadsembler/chadsembler/parser"
)

// Pools is the result of scope resolution: the global scope plus every
// procedure scope, addressable in the order the procedures were declared so
// later phases see a stable, repeatable iteration order.
type Pools struct {
	Global         *Scope
	ProcedureOrder []string
	Procedures     map[string]*Scope
}

// Run partitions tokens into a global scope and per-procedure scopes, then
// resolves every scope's symbol table.
func Run(tokens []parser.Token) (*Pools, error) {
	sink := diag.NewSink("Instruction Pool Errors:")

	pools := &Pools{
		Global:     newScope(),
		Procedures: make(map[string]*Scope),
	}

	getScopes(tokens, pools)
	updateGlobalSymbols(pools)

	updateSymbolTable(pools.Global, sink)
	for _, name := range pools.ProcedureOrder {
		updateSymbolTable(pools.Procedures[name], sink)
	}

	return pools, sink.AsFatal()
}

// getScopes walks the token stream once, routing tokens into the global
// scope unless they fall between a procedure's '{' and '}', in which case
// they form that procedure's own scope. The label immediately preceding '{'
// names the procedure and is pulled back out of the global scope.
func getScopes(tokens []parser.Token, pools *Pools) {
	index := 0
	length := len(tokens)

	for index < length {
		token := tokens[index]

		if token.Type == parser.LeftBrace {
			name := popProcedureName(pools.Global)

			index += 2 // skip '{' and the End token that follows it
			body := collectScope(tokens, &index)

			pools.ProcedureOrder = append(pools.ProcedureOrder, name)
			pools.Procedures[name] = &Scope{Tokens: body, Symbols: make(map[string]*Symbol)}
		} else {
			pools.Global.Tokens = append(pools.Global.Tokens, token)
		}

		index++
	}
}

// popProcedureName removes and returns the label token most recently pushed
// into the global scope's token list: the procedure's name.
func popProcedureName(global *Scope) string {
	last := len(global.Tokens) - 1
	token := global.Tokens[last]
	global.Tokens = global.Tokens[:last]

	if token.Type == parser.End {
		last = len(global.Tokens) - 1
		token = global.Tokens[last]
		global.Tokens = global.Tokens[:last]
	}

	return token.Value
}

// collectScope accumulates every token up to (but not including) the
// closing '}', leaving index positioned just past it.
func collectScope(tokens []parser.Token, index *int) []parser.Token {
	var body []parser.Token

	for tokens[*index].Type != parser.RightBrace {
		body = append(body, tokens[*index])
		*index++
	}
	*index++ // step past the '}' itself

	return body
}

// updateGlobalSymbols registers every procedure name as a Procedure symbol
// in the global scope, so CALL can resolve it like any other label.
func updateGlobalSymbols(pools *Pools) {
	for _, name := range pools.ProcedureOrder {
		pools.Global.Symbols[name] = &Symbol{Kind: Procedure}
	}
}

// updateSymbolTable scans a scope's tokens for label declarations, building
// its symbol table and counting statements and variables as it goes.
// Variable declarations ("LABEL DAT [value]") are stripped from the token
// stream once recorded.
func updateSymbolTable(scope *Scope, sink *diag.Sink) {
	index := 0
	statements := 0

	for index < len(scope.Tokens) {
		token := scope.Tokens[index]

		if token.Type == parser.Label && index+1 < len(scope.Tokens) &&
			(scope.Tokens[index+1].Type == parser.Instruction || scope.Tokens[index+1].Type == parser.AssemblyDirective) {
			handleLabel(scope, index, statements, sink)
		} else if token.Type == parser.Instruction {
			statements++
		}

		index++
	}

	scope.NumInstructions = statements
}

// handleLabel resolves a single label declaration at index: either
// recording a fresh symbol or reporting a redeclaration conflict against an
// existing one.
func handleLabel(scope *Scope, index, statements int, sink *diag.Sink) {
	first := scope.Tokens[index]
	second := scope.Tokens[index+1]

	if existing, ok := scope.Symbols[first.Value]; ok {
		handleRedeclaration(existing, first, second, sink)
		return
	}

	symbol := &Symbol{Kind: Variable}

	switch second.Type {
	case parser.AssemblyDirective:
		symbol.Value = variableValue(scope.Tokens, index)
		removeVariableDeclaration(scope, index)
		scope.NumVariables++

	case parser.Instruction:
		symbol.Kind = Branch
		symbol.Value = int64(statements)
	}

	scope.Symbols[first.Value] = symbol
}

// variableValue reads the optional initial value following a DAT directive,
// defaulting to 0 when none is given.
func variableValue(tokens []parser.Token, index int) int64 {
	if index+2 < len(tokens) && tokens[index+2].Type == parser.Value {
		v, err := strconv.ParseInt(tokens[index+2].Value, 10, 64)
		if err == nil {
			return v
		}
	}
	return 0
}

// removeVariableDeclaration deletes the "LABEL DAT [value]" tokens at index
// up to (but not including) the terminating End token.
func removeVariableDeclaration(scope *Scope, index int) {
	for index < len(scope.Tokens) && scope.Tokens[index].Type != parser.End {
		scope.Tokens = append(scope.Tokens[:index], scope.Tokens[index+1:]...)
	}
}

// handleRedeclaration reports the specific conflict between an existing
// symbol and an attempted redeclaration, mirroring which kind of label the
// new declaration's following token implies.
func handleRedeclaration(existing *Symbol, current, next parser.Token, sink *diag.Sink) {
	switch next.Type {
	case parser.Instruction: // attempted branch redeclaration
		switch existing.Kind {
		case Procedure:
			sink.Record(current.Row, current.Column, diag.BranchLabel, "Attempting to redeclare a procedure label to a branch label")
		case Branch:
			sink.Record(current.Row, current.Column, diag.BranchLabel, "Duplicate branch label found")
		case Variable:
			sink.Record(current.Row, current.Column, diag.BranchLabel, "Attempting to redeclare a variable label to a branch label")
		}

	case parser.AssemblyDirective: // attempted variable redeclaration
		switch existing.Kind {
		case Procedure:
			sink.Record(current.Row, current.Column, diag.VariableLabel, "Attempting to redeclare a procedure label to a variable label")
		case Branch:
			sink.Record(current.Row, current.Column, diag.VariableLabel, "Attempting to redeclare a branch label to a variable label")
		case Variable:
			sink.Record(current.Row, current.Column, diag.VariableLabel, "Duplicate variable label found")
		}
	}
}
