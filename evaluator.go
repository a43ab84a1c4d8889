package cellengine

import (
	"fmt"

	"github.com/berejant/cellengine/contracts"
)

// Evaluator executes a Program against a Store, implementing
// contracts.EvalContext so individual nodes can look up cells and
// recurse into nested programs without depending on the Sheet type
// itself (C7).
type Evaluator struct {
	store contracts.Store
}

func NewEvaluator(store contracts.Store) *Evaluator {
	return &Evaluator{store: store}
}

func (e *Evaluator) CellState(id uint64) (contracts.CellState, bool) {
	state, ok, err := e.store.Get(id)
	if err != nil || !ok {
		return contracts.CellState{}, false
	}
	return state, true
}

func (e *Evaluator) EvalProgram(prog contracts.Program, path contracts.EvalPath) (contracts.Value, error) {
	return e.Run(prog, path)
}

// Run executes prog left-to-right against a fresh value stack. Exactly
// one value must remain when every node has run; any node failure
// aborts the run immediately (§4.7).
func (e *Evaluator) Run(prog contracts.Program, path contracts.EvalPath) (contracts.Value, error) {
	stack := &contracts.Stack{}
	for _, node := range prog {
		if err := node.Evaluate(stack, e, path); err != nil {
			return contracts.Value{}, err
		}
	}
	if stack.Len() != 1 {
		return contracts.Value{}, fmt.Errorf("%w: program did not reduce to exactly one value", contracts.TypeError)
	}
	result, _ := stack.Pop()
	return result, nil
}
