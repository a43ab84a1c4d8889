package cellengine

import "github.com/berejant/cellengine/contracts"

// CopyRect copies the w-by-h rectangle rooted at src to the rectangle
// rooted at dst, relocating every relative reference inside a copied
// program by the same (dc, dr) offset the rectangle itself moved by
// (C9). All reads happen before any write, so a copy that overlaps its
// own source (dst inside src's rectangle, or vice versa) still sees the
// original contents at every source cell.
func (s *Sheet) CopyRect(dst, src contracts.Position, w, h int) {
	dc, dr := dst.Minus(src)

	type staged struct {
		id    uint64
		state contracts.CellState
	}
	pending := make([]staged, 0, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			from := src.Shift(int64(x), int64(y))
			to := dst.Shift(int64(x), int64(y))

			state, ok, _ := s.store.Get(from.ID())
			if !ok {
				state = contracts.CellState{Kind: contracts.CellEmpty}
			} else if state.Kind == contracts.CellProgram {
				state = contracts.CellState{Kind: contracts.CellProgram, Program: relocateProgram(state.Program, dc, dr)}
			}
			pending = append(pending, staged{id: to.ID(), state: state})
		}
	}

	for _, p := range pending {
		_ = s.store.Set(p.id, p.state)
	}
}

// CopyCell is a 1x1 convenience wrapper around CopyRect.
func (s *Sheet) CopyCell(dst, src contracts.Position) {
	s.CopyRect(dst, src, 1, 1)
}

// relocateProgram returns a copy of prog with every *RefNode relocated
// by (dc, dr); non-reference nodes are shared as-is since they are
// never mutated in place.
func relocateProgram(prog contracts.Program, dc, dr int64) contracts.Program {
	out := make(contracts.Program, len(prog))
	for i, node := range prog {
		if ref, ok := node.(*RefNode); ok {
			clone := ref.Clone()
			clone.Relocate(dc, dr)
			out[i] = clone
		} else {
			out[i] = node
		}
	}
	return out
}
