package cellengine

import (
	"strconv"
	"strings"

	"github.com/berejant/cellengine/contracts"
)

const formulaPrefix = "="

// FormulaParser drives a contracts.Builder from formula source text. No
// grammar ships with this engine (see DESIGN.md); callers that want
// `=`-prefixed text accepted by SetCell supply one.
type FormulaParser interface {
	Parse(formula string, builder contracts.Builder) error
}

// Sheet ties a Store, an Evaluator and the copy-rect/persistence
// engines together into the one stateful surface external callers use
// (C6). It mirrors the teacher's SheetRepository in shape: a thin
// façade over a pluggable backing store.
type Sheet struct {
	store  contracts.Store
	eval   *Evaluator
	Parser FormulaParser

	lastErr error
}

// NewSheet returns a Sheet backed by an in-memory Store.
func NewSheet() *Sheet {
	return NewSheetWithStore(NewMemStore())
}

// NewSheetWithStore returns a Sheet backed by the given Store, e.g. a
// *BoltStore for durability.
func NewSheetWithStore(store contracts.Store) *Sheet {
	return &Sheet{store: store, eval: NewEvaluator(store)}
}

// determineLiteralState classifies non-formula input text: the empty
// string is Empty, text that parses entirely as a float64 is Number,
// anything else is Text (§4.2).
func determineLiteralState(text string) contracts.CellState {
	if text == "" {
		return contracts.CellState{Kind: contracts.CellEmpty}
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return contracts.CellState{Kind: contracts.CellNumber, Number: n}
	}
	return contracts.CellState{Kind: contracts.CellText, Text: text}
}

// SetCell routes text to either the literal decoder or, for `=`-prefixed
// formulas, the configured FormulaParser, storing whatever Program it
// builds. A parse failure (or no Parser configured for a formula)
// leaves the cell Empty and reports false, matching the original's
// "a failed assignment still writes an empty cell" behavior.
func (s *Sheet) SetCell(pos contracts.Position, text string) bool {
	id := pos.ID()

	if strings.HasPrefix(text, formulaPrefix) {
		if s.Parser == nil {
			_ = s.store.Set(id, contracts.CellState{Kind: contracts.CellEmpty})
			return false
		}
		builder := NewProgramBuilder()
		if err := s.Parser.Parse(strings.TrimPrefix(text, formulaPrefix), builder); err != nil {
			_ = s.store.Set(id, contracts.CellState{Kind: contracts.CellEmpty})
			return false
		}
		state := contracts.CellState{Kind: contracts.CellProgram, Program: builder.Program()}
		return s.store.Set(id, state) == nil
	}

	return s.store.Set(id, determineLiteralState(text)) == nil
}

// SetProgram stores a pre-built Program directly, bypassing SetCell's
// FormulaParser indirection. Intended for callers (tests included) that
// already drive contracts.Builder themselves.
func (s *Sheet) SetProgram(pos contracts.Position, prog contracts.Program) bool {
	state := contracts.CellState{Kind: contracts.CellProgram, Program: prog}
	return s.store.Set(pos.ID(), state) == nil
}

// GetValue evaluates a single cell (C7's entry point). A Cycle error
// propagates out of every nested Ref unmangled; this is the outermost
// point it surfaces at, via LastError.
func (s *Sheet) GetValue(pos contracts.Position) contracts.Value {
	id := pos.ID()
	state, ok, err := s.store.Get(id)
	if err != nil || !ok || state.Kind == contracts.CellEmpty {
		s.lastErr = nil
		return contracts.Empty
	}

	switch state.Kind {
	case contracts.CellNumber:
		s.lastErr = nil
		return contracts.NumberValue(state.Number)
	case contracts.CellText:
		s.lastErr = nil
		return contracts.TextValue(state.Text)
	case contracts.CellProgram:
		path := contracts.EvalPath{id: struct{}{}}
		result, evalErr := s.eval.Run(state.Program, path)
		s.lastErr = evalErr
		if evalErr != nil {
			return contracts.Empty
		}
		return result
	default:
		s.lastErr = nil
		return contracts.Empty
	}
}

// LastError returns the error (if any) from the most recent GetValue
// call, surfacing Cycle to the caller without changing GetValue's
// always-returns-a-Value signature.
func (s *Sheet) LastError() error {
	return s.lastErr
}

// Close releases the underlying Store, if it holds a resource (e.g. a
// BoltStore's open file).
func (s *Sheet) Close() error {
	return s.store.Close()
}
