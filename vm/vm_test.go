package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chadsembler/chadsembler/codegen"
	"github.com/chadsembler/chadsembler/config"
	"github.com/chadsembler/chadsembler/parser"
	"github.com/chadsembler/chadsembler/pools"
	"github.com/chadsembler/chadsembler/semantics"
	"github.com/chadsembler/chadsembler/vm"
)

func assemble(t *testing.T, source string, table config.Table) *codegen.Result {
	t.Helper()

	tokens, err := parser.NewLexer(source).Run()
	require.NoError(t, err, "lexer error")
	require.NoError(t, parser.Parse(tokens), "parse error")

	p, err := pools.Run(tokens)
	require.NoError(t, err, "pools error")
	require.NoError(t, semantics.Run(p), "semantics error")

	result, err := codegen.Run(p, table)
	require.NoError(t, err, "codegen error")
	return result
}

func run(t *testing.T, source, stdin string, table config.Table) string {
	t.Helper()

	result := assemble(t, source, table)

	var out bytes.Buffer
	machine := vm.New(result.Memory, vm.Config{
		NumberGPRs:           table[config.Registers],
		MachineOperationBits: result.MachineOperationBits,
		AddressingModeBits:   result.AddressingModeBits,
		OperandBits:          result.OperandBits,
	}, strings.NewReader(stdin), &out)

	require.NoError(t, machine.Run(), "vm error")

	return out.String()
}

func TestInputThenOutputRoundTrips(t *testing.T) {
	out := run(t, "INP %ACC\nOUT %ACC\nHLT\n", "42\n", config.DefaultTable())
	require.Equal(t, ">>>42\n", out)
}

func TestAddTwoInputs(t *testing.T) {
	source := "INP %R1\nINP %R2\nLDA %R1, %ACC\nADD %R2, %ACC\nOUT %ACC\nHLT\n"
	out := run(t, source, "3\n4\n", config.DefaultTable())
	require.Equal(t, ">>>>>>7\n", out)
}

func TestVariableLoadsAndPrints(t *testing.T) {
	source := "LDA @X, %ACC\nOUT %ACC\nHLT\nX DAT 5\n"
	out := run(t, source, "", config.DefaultTable())
	require.Equal(t, "5\n", out)
}

func TestCallIntoProcedureAndReturn(t *testing.T) {
	source := "CALL P\nHLT\nP {\nLDA #7, %ACC\nOUT %ACC\nRET\n}\n"
	out := run(t, source, "", config.DefaultTable())
	require.Equal(t, "7\n", out)
}

func TestBranchPositiveLoopCountsDown(t *testing.T) {
	source := strings.Join([]string{
		"LDA #3, %R1",
		"LOOP LDA %R1, %ACC",
		"OUT %ACC",
		"SUB #1, %R1",
		"LDA %R1, %ACC",
		"BRP @LOOP, %ACC",
		"HLT",
	}, "\n") + "\n"

	out := run(t, source, "", config.DefaultTable())
	require.Equal(t, "3\n2\n1\n0\n", out)
}

func TestShiftWritesCarryFlag(t *testing.T) {
	source := "LDA #1, %R1\nLSL #1, %R1\nOUTB %FR\nHLT\n"
	out := run(t, source, "", config.DefaultTable())

	// architecture width varies with table, but FR's last character is the
	// carry bit: shifting 1 left by one clears the low bit without ejecting
	// a set bit, so the carry is 0.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	require.Equal(t, byte('0'), last[len(last)-1], "FR low bit should be carry 0")
}

func TestHaltStopsExecutionImmediately(t *testing.T) {
	out := run(t, "HLT\nOUT %ACC\n", "", config.DefaultTable())
	require.Empty(t, out, "expected no output after HLT")
}
