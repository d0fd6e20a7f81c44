package parser

import "testing"

func mustLex(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := NewLexer(source).Run()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	return tokens
}

func TestParseAcceptsValidProgram(t *testing.T) {
	tokens := mustLex(t, "START LDA #5\nADD %1, @VAR\nHLT\nVAR DAT 0\n")
	if err := Parse(tokens); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseAcceptsProcedureScope(t *testing.T) {
	tokens := mustLex(t, "DOUBLE {\nADD %1, %1\nRET\n}\nCALL DOUBLE\nHLT\n")
	if err := Parse(tokens); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseRejectsDoubleOpenScope(t *testing.T) {
	tokens := mustLex(t, "A {\nB {\nHLT\n}\n}\n")
	if err := Parse(tokens); err == nil {
		t.Fatal("expected an error for a nested, never-separately-closed scope")
	}
}

func TestParseRejectsUnmatchedCloseScope(t *testing.T) {
	tokens := mustLex(t, "HLT\n}\n")
	if err := Parse(tokens); err == nil {
		t.Fatal("expected an error for an unmatched '}'")
	}
}

func TestParseRejectsUnclosedScope(t *testing.T) {
	tokens := mustLex(t, "A {\nHLT\n")
	if err := Parse(tokens); err == nil {
		t.Fatal("expected an error for a scope that is opened but never closed")
	}
}

func TestParseRejectsAdjacentSeparatorAfterSeparator(t *testing.T) {
	tokens := mustLex(t, "ADD %1,, @VAR\n")
	if err := Parse(tokens); err == nil {
		t.Fatal("expected an error for a doubled separator")
	}
}

func TestParseRejectsLabelFollowedByValue(t *testing.T) {
	tokens := []Token{
		{Type: Label, Value: "FOO"},
		{Type: Value, Value: "5"},
		{Type: End},
	}
	if err := Parse(tokens); err == nil {
		t.Fatal("expected an error: a label cannot be directly followed by a value")
	}
}

func TestParseEmptyTokenStreamIsValid(t *testing.T) {
	if err := Parse(nil); err != nil {
		t.Fatalf("unexpected error for an empty token stream: %v", err)
	}
}
