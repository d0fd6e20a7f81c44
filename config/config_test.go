package config

import "testing"

func TestDefaultTableSeedsMinimums(t *testing.T) {
	table := DefaultTable()

	for key, minimum := range Minimums {
		if table[key] != minimum {
			t.Errorf("table[%s] = %d, want minimum %d", key, table[key], minimum)
		}
	}
}

func TestFileDefaultsApplyToRespectsMinimums(t *testing.T) {
	table := DefaultTable()
	fd := FileDefaults{Memory: 50, Registers: 8, Clock: 20}

	fd.ApplyTo(table)

	if table[Memory] != Minimums[Memory] {
		t.Errorf("MEMORY should stay at minimum %d, got %d", Minimums[Memory], table[Memory])
	}
	if table[Registers] != 8 {
		t.Errorf("REGISTERS = %d, want 8", table[Registers])
	}
	if table[Clock] != 20 {
		t.Errorf("CLOCK = %d, want 20", table[Clock])
	}
}

func TestArgumentProcessorAcceptsValidPairs(t *testing.T) {
	table := DefaultTable()
	ap := NewArgumentProcessor()

	if err := ap.Run([]string{"memory=200", "registers=5"}, table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table[Memory] != 200 {
		t.Errorf("MEMORY = %d, want 200", table[Memory])
	}
	if table[Registers] != 5 {
		t.Errorf("REGISTERS = %d, want 5", table[Registers])
	}
}

func TestArgumentProcessorRejectsUnknownOption(t *testing.T) {
	table := DefaultTable()
	ap := NewArgumentProcessor()

	err := ap.Run([]string{"bogus=1"}, table)
	if err == nil {
		t.Fatal("expected an error for an unknown option")
	}
}

func TestArgumentProcessorRejectsBelowMinimum(t *testing.T) {
	table := DefaultTable()
	ap := NewArgumentProcessor()

	err := ap.Run([]string{"memory=1"}, table)
	if err == nil {
		t.Fatal("expected an error for a value below the minimum")
	}
}

func TestArgumentProcessorRejectsSignedValue(t *testing.T) {
	table := DefaultTable()
	ap := NewArgumentProcessor()

	if err := ap.Run([]string{"memory=+200"}, table); err == nil {
		t.Fatal("expected an error for a signed value")
	}
}

func TestArgumentProcessorRejectsMalformedPair(t *testing.T) {
	table := DefaultTable()
	ap := NewArgumentProcessor()

	if err := ap.Run([]string{"memory"}, table); err == nil {
		t.Fatal("expected an error for a pair missing '='")
	}
}

func TestPreprocessorAppliesDirective(t *testing.T) {
	source := "!MEMORY=300\nLDA ACC\n"
	table := DefaultTable()
	pp := NewPreprocessor()

	if err := pp.Run(source, table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table[Memory] != 300 {
		t.Errorf("MEMORY = %d, want 300", table[Memory])
	}
}

func TestPreprocessorIgnoresComments(t *testing.T) {
	source := "; !MEMORY=5000 this is only a comment\nLDA ACC\n"
	table := DefaultTable()
	pp := NewPreprocessor()

	if err := pp.Run(source, table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table[Memory] != Minimums[Memory] {
		t.Errorf("MEMORY should be untouched by a comment, got %d", table[Memory])
	}
}

func TestPreprocessorAppliesMultipleDirectives(t *testing.T) {
	source := "!MEMORY=300\n!REGISTERS=10\n!CLOCK=5\n"
	table := DefaultTable()
	pp := NewPreprocessor()

	if err := pp.Run(source, table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table[Memory] != 300 || table[Registers] != 10 || table[Clock] != 5 {
		t.Errorf("unexpected table after directives: %+v", table)
	}
}

func TestPreprocessorReportsUnknownOption(t *testing.T) {
	source := "!BOGUS=1\n"
	table := DefaultTable()
	pp := NewPreprocessor()

	if err := pp.Run(source, table); err == nil {
		t.Fatal("expected an error for an unknown directive option")
	}
}
