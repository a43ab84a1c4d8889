package cellengine

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/berejant/cellengine/contracts"
)

const checksumLabel = "CHECKSUM"

// Save writes every non-empty cell as `<id>, <cell>\n`, preceded by a
// `CHECKSUM <n>` header line. n is the unsigned 64-bit wraparound sum of
// every byte in the data region that follows the header, each line's
// trailing `\n` included (C10).
func (s *Sheet) Save(w io.Writer) bool {
	var body strings.Builder
	err := s.store.Each(func(id uint64, state contracts.CellState) error {
		body.WriteString(strconv.FormatUint(id, 10))
		body.WriteString(", ")
		body.WriteString(encodeCellState(state))
		body.WriteString("\n")
		return nil
	})
	if err != nil {
		return false
	}

	data := body.String()
	var checksum uint64
	for i := 0; i < len(data); i++ {
		checksum += uint64(data[i])
	}

	if _, err := fmt.Fprintf(w, "%s %d\n", checksumLabel, checksum); err != nil {
		return false
	}
	if _, err := io.WriteString(w, data); err != nil {
		return false
	}
	return true
}

// Load replaces the sheet's contents with what r contains, provided its
// checksum validates. A checksum mismatch leaves the sheet untouched
// and returns false. Once the checksum validates, an individual
// malformed line (or node token) is skipped rather than failing the
// whole load — see DESIGN.md for why this leniency is the deliberate
// reading of an otherwise-silent spec (§9 Open Question).
func (s *Sheet) Load(r io.Reader) bool {
	data, err := io.ReadAll(r)
	if err != nil {
		return false
	}

	firstNewline := bytes.IndexByte(data, '\n')
	if firstNewline < 0 {
		return false
	}
	header := string(data[:firstNewline])
	rest := data[firstNewline+1:]

	var label string
	var declared uint64
	if n, err := fmt.Sscanf(header, "%s %d", &label, &declared); err != nil || n != 2 || label != checksumLabel {
		return false
	}

	var computed uint64
	for _, b := range rest {
		computed += uint64(b)
	}
	if computed != declared {
		return false
	}

	var existingIDs []uint64
	_ = s.store.Each(func(id uint64, _ contracts.CellState) error {
		existingIDs = append(existingIDs, id)
		return nil
	})
	for _, id := range existingIDs {
		_ = s.store.Delete(id)
	}

	for _, line := range strings.Split(string(rest), "\n") {
		if line == "" {
			continue
		}
		id, state, err := parseCellLine(line)
		if err != nil {
			continue
		}
		_ = s.store.Set(id, state)
	}
	return true
}
