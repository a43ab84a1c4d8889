// Package cellengine implements a programmable spreadsheet: a
// reference-relocating expression evaluator over a checksummed textual
// persistence format.
package cellengine

import "github.com/berejant/cellengine/contracts"

// Capabilities reports which optional behaviors this engine supports,
// mirroring the original implementation's bitmask query. No formula
// grammar ships here (see FormulaParser and DESIGN.md), so CapParser
// and CapFunctions are not set; everything else is.
func Capabilities() uint {
	return contracts.CapCyclicDeps | contracts.CapFileIO | contracts.CapSpeed
}

// New returns a Sheet backed by an in-memory Store, ready for
// SetCell/GetValue/CopyRect/Save/Load use.
func New() *Sheet {
	return NewSheet()
}
