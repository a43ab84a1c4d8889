package cellengine

import (
	"fmt"
	"strings"

	"github.com/berejant/cellengine/contracts"
)

// parseRange splits `<pos>:<pos>`, stripping `$` from each endpoint
// before parsing (§4.8).
func parseRange(text string) (start, end contracts.Position, err error) {
	parts := strings.SplitN(text, ":", 2)
	if len(parts) != 2 {
		return contracts.Position{}, contracts.Position{}, fmt.Errorf("%w: %q", contracts.BadRange, text)
	}

	start, err = contracts.ParsePosition(strings.ReplaceAll(parts[0], "$", ""))
	if err != nil {
		return contracts.Position{}, contracts.Position{}, fmt.Errorf("%w: %q", contracts.BadRange, text)
	}
	end, err = contracts.ParsePosition(strings.ReplaceAll(parts[1], "$", ""))
	if err != nil {
		return contracts.Position{}, contracts.Position{}, fmt.Errorf("%w: %q", contracts.BadRange, text)
	}
	return start, end, nil
}

// rangeBounds normalizes the two endpoints into a top-left/bottom-right
// rectangle regardless of the order the parser produced them in.
func rangeBounds(start, end contracts.Position) (minCol, maxCol uint32, minRow, maxRow uint64) {
	minCol, maxCol = start.Column, end.Column
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	minRow, maxRow = start.Row, end.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	return
}

// rangeValue resolves one cell for range-function purposes: literals
// are used directly, programs are recursively evaluated against the
// current cycle-detection path. ok is false for empty/missing cells and
// for programs that themselves collapse to Empty.
func rangeValue(ctx contracts.EvalContext, path contracts.EvalPath, pos contracts.Position) (contracts.Value, bool) {
	id := pos.ID()
	state, found := ctx.CellState(id)
	if !found {
		return contracts.Empty, false
	}

	switch state.Kind {
	case contracts.CellNumber:
		return contracts.NumberValue(state.Number), true
	case contracts.CellText:
		return contracts.TextValue(state.Text), true
	case contracts.CellProgram:
		if _, inProgress := path[id]; inProgress {
			return contracts.Empty, false
		}
		path[id] = struct{}{}
		result, err := ctx.EvalProgram(state.Program, path)
		delete(path, id)
		if err != nil || result.IsEmpty() {
			return contracts.Empty, false
		}
		return result, true
	default:
		return contracts.Empty, false
	}
}

// callFunction dispatches a FuncCall node's already-evaluated, already
// parse-order arguments (C8).
func callFunction(name string, args []contracts.Value, ctx contracts.EvalContext, path contracts.EvalPath) (contracts.Value, error) {
	switch name {
	case "if":
		return funcIf(args)
	case "countval":
		return funcCountval(args, ctx, path)
	case "sum", "count", "min", "max":
		return funcOverRange(name, args, ctx, path)
	default:
		return contracts.Value{}, fmt.Errorf("%s: %w", name, contracts.UnknownFunction)
	}
}

func funcIf(args []contracts.Value) (contracts.Value, error) {
	if len(args) != 3 {
		return contracts.Value{}, fmt.Errorf("if: %w", contracts.ArityError)
	}
	cond := args[0]
	if !cond.IsNumber() {
		return contracts.Value{}, fmt.Errorf("if: %w: condition is not numeric", contracts.TypeError)
	}
	if cond.Number != 0 {
		return args[1], nil
	}
	return args[2], nil
}

func funcCountval(args []contracts.Value, ctx contracts.EvalContext, path contracts.EvalPath) (contracts.Value, error) {
	if len(args) != 2 {
		return contracts.Value{}, fmt.Errorf("countval: %w", contracts.ArityError)
	}
	needle := args[0]
	rangeArg := args[1]
	if !rangeArg.IsText() {
		return contracts.Value{}, fmt.Errorf("countval: %w: second argument must be a range", contracts.TypeError)
	}

	start, end, err := parseRange(rangeArg.Text)
	if err != nil {
		return contracts.Value{}, err
	}
	minCol, maxCol, minRow, maxRow := rangeBounds(start, end)

	var count float64
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			v, ok := rangeValue(ctx, path, contracts.Position{Column: col, Row: row})
			if ok && v.Equal(needle) {
				count++
			}
		}
	}
	return contracts.NumberValue(count), nil
}

func funcOverRange(name string, args []contracts.Value, ctx contracts.EvalContext, path contracts.EvalPath) (contracts.Value, error) {
	if len(args) != 1 {
		return contracts.Value{}, fmt.Errorf("%s: %w", name, contracts.ArityError)
	}
	rangeArg := args[0]
	if !rangeArg.IsText() {
		return contracts.Value{}, fmt.Errorf("%s: %w: argument must be a range", name, contracts.TypeError)
	}

	start, end, err := parseRange(rangeArg.Text)
	if err != nil {
		return contracts.Value{}, err
	}
	minCol, maxCol, minRow, maxRow := rangeBounds(start, end)

	var numbers []float64
	var nonEmptyCount float64
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			v, ok := rangeValue(ctx, path, contracts.Position{Column: col, Row: row})
			if !ok {
				continue
			}
			nonEmptyCount++
			if v.IsNumber() {
				numbers = append(numbers, v.Number)
			}
		}
	}

	switch name {
	case "count":
		return contracts.NumberValue(nonEmptyCount), nil
	case "sum":
		if len(numbers) == 0 {
			return contracts.Value{}, fmt.Errorf("sum: %w", contracts.EmptyRangeResult)
		}
		return contracts.NumberValue(reduceSum(numbers)), nil
	case "min":
		if len(numbers) == 0 {
			return contracts.Value{}, fmt.Errorf("min: %w", contracts.EmptyRangeResult)
		}
		return contracts.NumberValue(reduceMin(numbers)), nil
	case "max":
		if len(numbers) == 0 {
			return contracts.Value{}, fmt.Errorf("max: %w", contracts.EmptyRangeResult)
		}
		return contracts.NumberValue(reduceMax(numbers)), nil
	}
	return contracts.Value{}, fmt.Errorf("%s: %w", name, contracts.UnknownFunction)
}
