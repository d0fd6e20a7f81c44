// Package pools partitions a validated token stream into a global scope and
// one scope per procedure, and builds each scope's symbol table: which
// labels are branch targets, which are variables, and which are procedures.
package pools

// Kind distinguishes what a label resolves to.
type Kind int

const (
	Variable Kind = iota
	Branch
	Procedure
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "Variable"
	case Branch:
		return "Branch"
	case Procedure:
		return "Procedure"
	default:
		return "Unknown"
	}
}

// Symbol is a resolved label: its value (a statement index for a branch, an
// initial value for a variable, or 0 for a procedure until code generation
// assigns its entry address; code generation also rewrites branch and
// variable values to addresses) and which kind of label it is.
type Symbol struct {
	Value int64
	Kind  Kind
}
