package cellengine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/berejant/cellengine/contracts"
)

// This codec is the Go-idiomatic replacement for the teacher's
// CellSerializer.go (a length-prefixed binary key/value codec): instead
// it renders/parses the exact textual cell forms the persistence format
// (C10) and BoltStore both share, so a bbolt-backed Store and a plain
// text file agree on one encoding.

// encodeCellState renders a cell's value in the textual form used by
// both Save (C10) and BoltStore's on-disk values.
func encodeCellState(state contracts.CellState) string {
	switch state.Kind {
	case contracts.CellNumber:
		return formatNumber(state.Number)
	case contracts.CellText:
		return `"` + escapeQuotes(state.Text) + `"`
	case contracts.CellProgram:
		return state.Program.Save()
	default:
		return "undefined"
	}
}

// decodeCellState parses one cell's textual form back into a CellState.
func decodeCellState(text string) (contracts.CellState, error) {
	switch {
	case text == "undefined":
		return contracts.CellState{Kind: contracts.CellEmpty}, nil
	case strings.HasPrefix(text, `"`):
		str, err := decodeQuotedString(text)
		if err != nil {
			return contracts.CellState{}, err
		}
		return contracts.CellState{Kind: contracts.CellText, Text: str}, nil
	case strings.HasPrefix(text, "["):
		prog, err := decodeProgram(text)
		if err != nil {
			return contracts.CellState{}, err
		}
		return contracts.CellState{Kind: contracts.CellProgram, Program: prog}, nil
	default:
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return contracts.CellState{}, fmt.Errorf("%w: bad number %q", contracts.BadFormat, text)
		}
		return contracts.CellState{Kind: contracts.CellNumber, Number: n}, nil
	}
}

// decodeQuotedString strips the surrounding quotes and unescapes `""`.
func decodeQuotedString(text string) (string, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", fmt.Errorf("%w: malformed string %q", contracts.BadFormat, text)
	}
	return unescapeQuotes(text[1 : len(text)-1]), nil
}

// decodeProgram parses a `[node, node, ...]` program form.
func decodeProgram(text string) (contracts.Program, error) {
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, fmt.Errorf("%w: malformed program %q", contracts.BadFormat, text)
	}
	inner := text[1 : len(text)-1]
	tokens := splitTopLevel(inner)
	prog := make(contracts.Program, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		node, err := decodeNode(tok)
		if err != nil {
			// An unrecognized node token does not invalidate a program
			// whose checksum already validated; skip it, matching the
			// original loader's line-level leniency (see SPEC_FULL.md).
			continue
		}
		prog = append(prog, node)
	}
	return prog, nil
}

// splitTopLevel splits s on ", " while treating a double-quoted span as
// opaque, so a comma inside a String node's text is never mistaken for
// a separator. A doubled `""` escape never straddles a ", " boundary,
// so the naive per-quote-char toggle below is sufficient.
func splitTopLevel(s string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuotes = !inQuotes
			current.WriteByte(c)
			continue
		}
		if !inQuotes && c == ',' && i+1 < len(s) && s[i+1] == ' ' {
			tokens = append(tokens, current.String())
			current.Reset()
			i++
			continue
		}
		current.WriteByte(c)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// decodeNode parses one `Kind rest...` node token.
func decodeNode(tok string) (contracts.Node, error) {
	sp := strings.IndexByte(tok, ' ')
	if sp < 0 {
		return nil, fmt.Errorf("%w: malformed node %q", contracts.BadFormat, tok)
	}
	kind, rest := tok[:sp], tok[sp+1:]

	switch kind {
	case "Constant":
		n, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad constant %q", contracts.BadFormat, tok)
		}
		return &ConstNode{Value: n}, nil
	case "Reference":
		return parseRefNode(rest)
	case "Range":
		return &RangeNode{Text: rest}, nil
	case "UnaryOperation":
		return &UnaryOpNode{Op: rest}, nil
	case "BinaryOperation":
		return &BinaryOpNode{Op: rest}, nil
	case "String":
		str, err := decodeQuotedString(rest)
		if err != nil {
			return nil, err
		}
		return &TextNode{Value: str}, nil
	case "Function":
		parts := strings.SplitN(rest, " ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed function node %q", contracts.BadFormat, tok)
		}
		arity, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad arity %q", contracts.BadFormat, tok)
		}
		return &FuncCallNode{Name: parts[0], Arity: arity}, nil
	default:
		return nil, fmt.Errorf("%w: unknown node kind %q", contracts.BadFormat, kind)
	}
}

// parseCellLine parses one `<id>, <cell>` persistence line.
func parseCellLine(line string) (uint64, contracts.CellState, error) {
	idx := strings.Index(line, ", ")
	if idx < 0 {
		return 0, contracts.CellState{}, fmt.Errorf("%w: missing separator in %q", contracts.BadFormat, line)
	}
	id, err := strconv.ParseUint(line[:idx], 10, 64)
	if err != nil {
		return 0, contracts.CellState{}, fmt.Errorf("%w: bad id in %q", contracts.BadFormat, line)
	}
	state, err := decodeCellState(line[idx+2:])
	if err != nil {
		return 0, contracts.CellState{}, err
	}
	return id, state, nil
}
