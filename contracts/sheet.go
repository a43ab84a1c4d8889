package contracts

import "io"

// Capability bits (§6).
const (
	CapCyclicDeps uint = 0x01
	CapFunctions  uint = 0x02
	CapFileIO     uint = 0x04
	CapSpeed      uint = 0x08
	CapParser     uint = 0x10
)

// Sheet is the external library surface (§6).
type Sheet interface {
	SetCell(pos Position, text string) bool
	GetValue(pos Position) Value
	CopyRect(dst, src Position, w, h int)
	Save(w io.Writer) bool
	Load(r io.Reader) bool
}
