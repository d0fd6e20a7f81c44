package parser

import "testing"

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func equalTypes(t *testing.T, got []TokenType, want []TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexerSimpleInstruction(t *testing.T) {
	tokens, err := NewLexer("LDA #5\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalTypes(t, tokenTypes(tokens), []TokenType{Instruction, AddressingMode, Value, End})
}

func TestLexerIgnoresComments(t *testing.T) {
	tokens, err := NewLexer("; a full line comment\nHLT\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalTypes(t, tokenTypes(tokens), []TokenType{Instruction, End})
}

func TestLexerIgnoresDirectives(t *testing.T) {
	tokens, err := NewLexer("!MEMORY=500\nHLT\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalTypes(t, tokenTypes(tokens), []TokenType{Instruction, End})
}

func TestLexerLabelAndSeparator(t *testing.T) {
	tokens, err := NewLexer("ADD %R1, @VAR\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalTypes(t, tokenTypes(tokens), []TokenType{
		Instruction, AddressingMode, Register, Separator, AddressingMode, Label, End,
	})
}

func TestLexerGPRRegister(t *testing.T) {
	tokens, err := NewLexer("LDA %REG3\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Type != Register || tokens[2].Value != "3" {
		t.Fatalf("expected register token with digits '3', got %+v", tokens[2])
	}
}

func TestLexerSpecialRegisterName(t *testing.T) {
	tokens, err := NewLexer("LDA %ACC\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Type != Register || tokens[2].Value != "ACC" {
		t.Fatalf("expected special register token 'ACC', got %+v", tokens[2])
	}
}

func TestLexerAddressingModeWordForm(t *testing.T) {
	tokens, err := NewLexer("LDA IMMEDIATE 5\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Type != AddressingMode || tokens[1].Value != "#" {
		t.Fatalf("expected normalised addressing mode '#', got %+v", tokens[1])
	}
}

func TestLexerInvalidLabelCharacters(t *testing.T) {
	_, err := NewLexer("LDA BAD$LABEL\n").Run()
	if err == nil {
		t.Fatal("expected a lexer error for an invalid label character")
	}
}

func TestLexerInvalidValueCharacters(t *testing.T) {
	_, err := NewLexer("LDA #5A\n").Run()
	if err == nil {
		t.Fatal("expected a lexer error for an invalid value character")
	}
}

func TestLexerScopeBraces(t *testing.T) {
	tokens, err := NewLexer("PROC {\nHLT\n}\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalTypes(t, tokenTypes(tokens), []TokenType{
		Label, LeftBrace, End, Instruction, End, RightBrace, End,
	})
}

func TestLexerEmptySourceStillEmitsEnd(t *testing.T) {
	tokens, err := NewLexer("").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalTypes(t, tokenTypes(tokens), []TokenType{End})
}

func TestLexerDatDirective(t *testing.T) {
	tokens, err := NewLexer("VAR DAT 10\n").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalTypes(t, tokenTypes(tokens), []TokenType{Label, AssemblyDirective, Value, End})
}
