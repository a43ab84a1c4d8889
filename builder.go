package cellengine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/berejant/cellengine/contracts"
)

// ProgramBuilder implements contracts.Builder (C5). A formula parser
// (out of scope here) drives these calls in postfix order; tests drive
// them directly to simulate that parser.
type ProgramBuilder struct {
	nodes contracts.Program
}

func NewProgramBuilder() *ProgramBuilder {
	return &ProgramBuilder{}
}

func (b *ProgramBuilder) push(n contracts.Node) {
	b.nodes = append(b.nodes, n)
}

func (b *ProgramBuilder) OpAdd() { b.push(&BinaryOpNode{Op: "+"}) }
func (b *ProgramBuilder) OpSub() { b.push(&BinaryOpNode{Op: "-"}) }
func (b *ProgramBuilder) OpMul() { b.push(&BinaryOpNode{Op: "*"}) }
func (b *ProgramBuilder) OpDiv() { b.push(&BinaryOpNode{Op: "/"}) }
func (b *ProgramBuilder) OpPow() { b.push(&BinaryOpNode{Op: "^"}) }
func (b *ProgramBuilder) OpNeg() { b.push(&UnaryOpNode{Op: "-"}) }
func (b *ProgramBuilder) OpEq()  { b.push(&BinaryOpNode{Op: "="}) }
func (b *ProgramBuilder) OpNe()  { b.push(&BinaryOpNode{Op: "<>"}) }
func (b *ProgramBuilder) OpLt()  { b.push(&BinaryOpNode{Op: "<"}) }
func (b *ProgramBuilder) OpLe()  { b.push(&BinaryOpNode{Op: "<="}) }
func (b *ProgramBuilder) OpGt()  { b.push(&BinaryOpNode{Op: ">"}) }
func (b *ProgramBuilder) OpGe()  { b.push(&BinaryOpNode{Op: ">="}) }

func (b *ProgramBuilder) ValNumber(n float64) { b.push(&ConstNode{Value: n}) }
func (b *ProgramBuilder) ValString(s string)  { b.push(&TextNode{Value: s}) }

func (b *ProgramBuilder) ValReference(ref string) error {
	node, err := parseRefNode(ref)
	if err != nil {
		return err
	}
	b.push(node)
	return nil
}

func (b *ProgramBuilder) ValRange(rangeText string) {
	b.push(&RangeNode{Text: rangeText})
}

func (b *ProgramBuilder) FuncCall(name string, arity int) {
	b.push(&FuncCallNode{Name: name, Arity: arity})
}

func (b *ProgramBuilder) Program() contracts.Program {
	return b.nodes
}

// parseRefNode parses a reference literal (`^(\$?[A-Za-z]+\$?[0-9]+)$`)
// into a *RefNode, recording which axis is absolute — unlike
// contracts.ParsePosition, which ignores `$` entirely.
func parseRefNode(text string) (*RefNode, error) {
	s := text

	absCol := false
	if strings.HasPrefix(s, "$") {
		absCol = true
		s = s[1:]
	}

	i := 0
	for i < len(s) && contracts.IsLetter(s[i]) {
		i++
	}
	if i == 0 {
		return nil, fmt.Errorf("%w: missing column letters in %q", contracts.BadReference, text)
	}
	colPart := s[:i]
	rest := s[i:]

	absRow := false
	if strings.HasPrefix(rest, "$") {
		absRow = true
		rest = rest[1:]
	}
	if rest == "" {
		return nil, fmt.Errorf("%w: missing row digits in %q", contracts.BadReference, text)
	}

	row, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad row in %q: %v", contracts.BadReference, text, err)
	}
	col, err := contracts.ParseColumnLetters(colPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.BadReference, err)
	}

	return &RefNode{Col: col, Row: row, AbsCol: absCol, AbsRow: absRow}, nil
}
