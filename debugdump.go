package cellengine

import (
	"github.com/bytedance/sonic"

	"github.com/berejant/cellengine/contracts"
)

// cellDump is the JSON-friendly projection of one stored cell, used
// only by DumpJSON/LoadJSON. Programs are rendered via their existing
// textual Save() form rather than a second JSON node encoding.
type cellDump struct {
	ID    uint64 `json:"id"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

var cellKindNames = map[contracts.CellStateKind]string{
	contracts.CellEmpty:   "empty",
	contracts.CellNumber:  "number",
	contracts.CellText:    "text",
	contracts.CellProgram: "program",
}

// DumpJSON renders every non-empty cell as a JSON array, using sonic
// for the encode the way the teacher's API layer used it for responses.
// This is a debugging/inspection aid, not the persistence format (C10
// owns that).
func (s *Sheet) DumpJSON() ([]byte, error) {
	cells := []cellDump{}
	err := s.store.Each(func(id uint64, state contracts.CellState) error {
		cells = append(cells, cellDump{
			ID:    id,
			Kind:  cellKindNames[state.Kind],
			Value: encodeCellState(state),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(cells)
}

// LoadJSON restores cells from DumpJSON's output, replacing whatever
// the sheet currently holds.
func (s *Sheet) LoadJSON(data []byte) error {
	var cells []cellDump
	if err := sonic.Unmarshal(data, &cells); err != nil {
		return err
	}

	var existingIDs []uint64
	_ = s.store.Each(func(id uint64, _ contracts.CellState) error {
		existingIDs = append(existingIDs, id)
		return nil
	})
	for _, id := range existingIDs {
		_ = s.store.Delete(id)
	}

	for _, c := range cells {
		state, err := decodeCellState(c.Value)
		if err != nil {
			return err
		}
		if err := s.store.Set(c.ID, state); err != nil {
			return err
		}
	}
	return nil
}
