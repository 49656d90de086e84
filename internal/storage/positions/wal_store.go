// Package positions persists position snapshots in a write-ahead log.
// Every save appends the position's boundary record; on load the latest
// record per position id wins, so the store doubles as a history of
// adjustments (trailing stops, target changes).
package positions

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/venantvr/go-trading-objects/internal/domain"
	"github.com/venantvr/go-trading-objects/internal/quotes"
)

const (
	DefaultDir   = "./wal/positions"
	segmentLimit = 100
	maxSegments  = 10

	positionKeyPrefix = "position_"
)

// WALStore persists position records in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed position store.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "position_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init position WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends the position snapshot to the WAL.
func (s *WALStore) Save(rec domain.PositionRecord) error {
	if s == nil || s.wal == nil {
		return errors.New("position store is not initialized")
	}
	if rec.ID == "" {
		return errors.Wrap(quotes.ErrValidation, "position record id is required")
	}
	if rec.Pair == "" {
		return errors.Wrap(quotes.ErrValidation, "position record pair is required")
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "marshal position record")
	}

	key := positionKeyPrefix + rec.ID

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// SavePosition is Save for a live position.
func (s *WALStore) SavePosition(pos domain.Position) error {
	return s.Save(pos.Record())
}

// Load replays the WAL and rebuilds the latest snapshot of every position
// belonging to the given pair, in first-seen order. Records of other pairs
// are skipped.
func (s *WALStore) Load(pair *quotes.Pair) ([]domain.Position, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("position store is not initialized")
	}
	if pair == nil {
		return nil, errors.Wrap(quotes.ErrValidation, "load requires a pair")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[string]domain.PositionRecord)
	var order []string

	current := s.wal.CurrentIndex()
	for idx := uint64(1); idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, positionKeyPrefix) {
			continue
		}

		var rec domain.PositionRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, errors.Wrap(err, "decode position record")
		}
		if rec.Pair != pair.ID() {
			continue
		}

		if _, seen := latest[rec.ID]; !seen {
			order = append(order, rec.ID)
		}
		latest[rec.ID] = rec
	}

	out := make([]domain.Position, 0, len(order))
	for _, id := range order {
		pos, err := domain.PositionFromRecord(latest[id], pair)
		if err != nil {
			return nil, errors.Wrapf(err, "rebuild position %s", id)
		}
		out = append(out, pos)
	}
	return out, nil
}

// Entry is a position record together with its WAL index, for readers
// that resume from a known index.
type Entry struct {
	Index  uint64
	Record domain.PositionRecord
}

// RecordsAfter returns every position record with a WAL index strictly
// greater than the given one, in append order.
func (s *WALStore) RecordsAfter(index uint64) ([]Entry, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("position store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	current := s.wal.CurrentIndex()
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, positionKeyPrefix) {
			continue
		}

		var rec domain.PositionRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, errors.Wrap(err, "decode position record")
		}
		out = append(out, Entry{Index: idx, Record: rec})
	}
	return out, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("position store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
