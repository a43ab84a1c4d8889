package contracts

// Store is the pluggable backing map of a Sheet (C6), keyed by
// Position.ID(). A missing key is equivalent to CellEmpty, never a
// distinct "not found" state exposed above this layer.
type Store interface {
	Get(id uint64) (CellState, bool, error)
	Set(id uint64, state CellState) error
	Delete(id uint64) error
	// Each iterates all stored cells in unspecified order. fn's error
	// aborts the iteration and is returned from Each.
	Each(fn func(id uint64, state CellState) error) error
	Close() error
}
