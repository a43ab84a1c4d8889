package cellengine

import (
	"encoding/binary"
	"fmt"

	"github.com/berejant/cellengine/contracts"
	bolt "go.etcd.io/bbolt"
)

// cellsBucket is the single bucket BoltStore keeps its cells in. The
// teacher's SheetRepository.go used one bucket per sheet plus a
// dependency-tree bucket for cascade recompute; this engine has one
// sheet's worth of cells and no recompute scheduling (see DESIGN.md),
// so a single bucket is all that's left to adapt.
var cellsBucket = []byte("cells")

// BoltStore is a bbolt-backed contracts.Store: a durable alternative to
// MemStore for callers that want the engine's cells to survive a
// process restart. Cells are encoded with the same textual codec
// persistence.go uses for Save/Load (serializer.go), so a bbolt-backed
// Sheet and a plain-text Sheet agree byte-for-byte on cell content.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if necessary) a bbolt database at path
// and ensures the cells bucket exists.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cellsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init bolt store: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func (s *BoltStore) Get(id uint64) (contracts.CellState, bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(cellsBucket).Get(idKey(id))
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return contracts.CellState{}, false, err
	}
	if raw == nil {
		return contracts.CellState{}, false, nil
	}
	state, err := decodeCellState(string(raw))
	if err != nil {
		return contracts.CellState{}, false, err
	}
	return state, true, nil
}

func (s *BoltStore) Set(id uint64, state contracts.CellState) error {
	if state.Kind == contracts.CellEmpty {
		return s.Delete(id)
	}
	encoded := []byte(encodeCellState(state))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cellsBucket).Put(idKey(id), encoded)
	})
}

func (s *BoltStore) Delete(id uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cellsBucket).Delete(idKey(id))
	})
}

func (s *BoltStore) Each(fn func(id uint64, state contracts.CellState) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(cellsBucket).ForEach(func(k, v []byte) error {
			id := binary.BigEndian.Uint64(k)
			state, err := decodeCellState(string(v))
			if err != nil {
				return err
			}
			return fn(id, state)
		})
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
