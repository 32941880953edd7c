// Package store owns the set of named ordered trees the index lives in
// (C2). It exposes keyed insert, prefix scan (forward and reverse) and
// durable flush, and persists the span and progress-marker state the
// indexer core needs to resume after a restart.
//
// Physically there is one badger.DB per indexer (the teacher experimented
// with the same three-engine choice in ethdb.NewMemDatabase: bolt, lmdb or
// badger; this module commits to badger). Badger has a single flat
// keyspace, so each named tree gets a one-byte physical prefix multiplexed
// in front of its logical keys -- the same "prefix_id" idiom the retrieval
// pack's badger-backed chain indexers use for table separation.
package store

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// treeOrder fixes the physical byte assigned to each logical tree. Order is
// append-only: inserting in the middle would reassign every tree after it
// and corrupt existing data on disk.
var treeOrder = []string{
	"root", // untyped progress markers
	"span",
	"variant",
	"account_id",
	"account_index",
	"auction_index",
	"bounty_index",
	"candidate_hash",
	"era_index",
	"message_id",
	"para_id",
	"pool_id",
	"preimage_hash",
	"proposal_hash",
	"proposal_index",
	"ref_index",
	"registrar_index",
	"session_index",
	"tip_hash",
	"subscription_id",
}

var treeID = func() map[string]byte {
	m := make(map[string]byte, len(treeOrder))
	for i, name := range treeOrder {
		m[name] = byte(i)
	}
	return m
}()

// AttributeTrees lists every tree that carries attribute rows, i.e. every
// tree except "root" and "span".
func AttributeTrees() []string {
	out := make([]string, 0, len(treeOrder)-2)
	for _, name := range treeOrder {
		if name != "root" && name != "span" {
			out = append(out, name)
		}
	}
	return out
}

func physicalPrefix(tree string) byte {
	id, ok := treeID[tree]
	if !ok {
		panic(fmt.Sprintf("store: unknown tree %q", tree))
	}
	return id
}

// ErrNotFound is returned by Get when the key is absent from the tree.
var ErrNotFound = fmt.Errorf("store: key not found")

// Store owns the badger handle and namespaces every operation by tree.
type Store struct {
	db  *badger.DB
	log *zap.SugaredLogger
}

// Options configures Open. Cache sizing follows the teacher's
// datasize-typed config knobs (stage_log_index.go's logIndicesMemLimit).
type Options struct {
	InMemory     bool
	IndexCacheMB int64
}

// Open creates missing trees implicitly (badger requires no schema) and
// never destroys existing data.
func Open(path string, opts Options, log *zap.SugaredLogger) (*Store, error) {
	bopts := badger.DefaultOptions(path)
	bopts = bopts.WithLogger(badgerLogAdapter{log})
	if opts.InMemory {
		bopts = bopts.WithInMemory(true)
	}
	if opts.IndexCacheMB > 0 {
		bopts = bopts.WithIndexCacheSize(opts.IndexCacheMB << 20)
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying badger handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Flush durably commits pending writes. Badger's own sync policy governs
// durability between flushes; a crash can lose the last handful of writes,
// which I1 lets recovery detect and re-index.
func (s *Store) Flush() error {
	return s.db.Sync()
}

func physicalKey(tree string, key []byte) []byte {
	out := make([]byte, 1+len(key))
	out[0] = physicalPrefix(tree)
	copy(out[1:], key)
	return out
}

// Insert is idempotent: re-inserting the exact bytes is a no-op in effect
// (same key, same empty value), though it still performs one atomic
// single-key write.
func (s *Store) Insert(tree string, key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(physicalKey(tree, key), nil)
	})
}

// Put stores an explicit value, used by span and progress-marker rows.
func (s *Store) Put(tree string, key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(physicalKey(tree, key), value)
	})
}

// Delete removes a single key. Used by span maintenance and range
// invalidation; never by ordinary attribute-row writes, which are
// append-only.
func (s *Store) Delete(tree string, key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(physicalKey(tree, key))
	})
}

// Get fetches a single value, returning ErrNotFound if the key is absent.
func (s *Store) Get(tree string, key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(physicalKey(tree, key))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			value = append([]byte{}, v...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Iterator walks keys within one tree that share a logical prefix, in
// either direction. Iterators observe a snapshot at least as recent as
// their creation point, per badger's MVCC read-transaction semantics.
type Iterator struct {
	txn     *badger.Txn
	it      *badger.Iterator
	physPfx []byte
	started bool
}

// ScanPrefix returns an Iterator over every key in tree whose logical
// (post-tree-prefix) bytes start with prefix. reverse=true walks from the
// largest matching key down, which is how I3's descending scan is served.
func (s *Store) ScanPrefix(tree string, prefix []byte, reverse bool) *Iterator {
	physPfx := physicalKey(tree, prefix)
	txn := s.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Reverse = reverse
	opts.Prefix = physPfx
	it := txn.NewIterator(opts)
	if reverse {
		seek := append(append([]byte{}, physPfx...), 0xFF)
		it.Seek(seek)
	} else {
		it.Seek(physPfx)
	}
	return &Iterator{txn: txn, it: it, physPfx: physPfx}
}

// SeekTree returns an Iterator positioned at the first key in tree that is
// >= fromKey (lexicographically), walking forward through the rest of the
// tree regardless of fromKey's content. Unlike ScanPrefix, the match
// criterion is "still inside this tree", not "shares this prefix" -- it is
// how FindSpanCovering finds "the first span whose End is >= block"
// without requiring block to be a literal prefix of that span's key.
func (s *Store) SeekTree(tree string, fromKey []byte) *Iterator {
	treePfx := []byte{physicalPrefix(tree)}
	seekAt := physicalKey(tree, fromKey)
	txn := s.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = treePfx
	it := txn.NewIterator(opts)
	it.Seek(seekAt)
	return &Iterator{txn: txn, it: it, physPfx: treePfx}
}

// Next advances the iterator and reports whether a matching entry remains.
func (it *Iterator) Next() bool {
	if it.started {
		it.it.Next()
	}
	it.started = true
	return it.it.ValidForPrefix(it.physPfx)
}

// Key returns the logical key (tree prefix byte stripped) at the current
// position: attribute-bytes || block(4) || event_index(2).
func (it *Iterator) Key() []byte {
	full := it.it.Item().KeyCopy(nil)
	return full[1:]
}

// Close releases the iterator's snapshot transaction.
func (it *Iterator) Close() {
	it.it.Close()
	it.txn.Discard()
}

// InvalidateRange drops every attribute-tree row whose encoded block number
// falls in [start, end]. This is the one place the store pays for the key
// layout's lack of a by-block index: there is no way to seek directly to a
// block range, since block number is the suffix of every key, not the
// prefix, so every row in every attribute tree is visited. It is only
// invoked on the rare spec-version-skew path (spec.md §4.2/§9), never on
// the hot indexing path.
func (s *Store) InvalidateRange(start, end uint32) error {
	for _, tree := range append(AttributeTrees(), "span") {
		if err := s.invalidateTreeRange(tree, start, end); err != nil {
			return fmt.Errorf("store: invalidate %s[%d,%d]: %w", tree, start, end, err)
		}
	}
	return nil
}

func (s *Store) invalidateTreeRange(tree string, start, end uint32) error {
	pfx := []byte{physicalPrefix(tree)}
	for {
		var toDelete [][]byte
		err := s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			opts.Prefix = pfx
			it := txn.NewIterator(opts)
			defer it.Close()
			for it.Seek(pfx); it.ValidForPrefix(pfx); it.Next() {
				k := it.Item().KeyCopy(nil)
				if !keyInBlockRange(tree, k, start, end) {
					continue
				}
				toDelete = append(toDelete, k)
				if len(toDelete) >= 10000 {
					break
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		if len(toDelete) == 0 {
			return nil
		}
		wb := s.db.NewWriteBatch()
		for _, k := range toDelete {
			if err := wb.Delete(k); err != nil {
				wb.Cancel()
				return err
			}
		}
		if err := wb.Flush(); err != nil {
			return err
		}
	}
}

// keyInBlockRange inspects the physical key's block-number suffix. The
// span tree is keyed by end(4) with no trailing event index; attribute
// trees carry block(4)||event(2) as their last six bytes.
func keyInBlockRange(tree string, physKey []byte, start, end uint32) bool {
	if tree == "span" {
		sp, ok := decodeSpanKey(physKey[1:])
		if !ok {
			return false
		}
		return sp <= end && sp >= start
	}
	if len(physKey) < 1+6 {
		return false
	}
	block := beUint32(physKey[len(physKey)-6 : len(physKey)-2])
	return block >= start && block <= end
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

type badgerLogAdapter struct{ l *zap.SugaredLogger }

func (b badgerLogAdapter) Errorf(f string, args ...interface{})   { b.l.Errorf(f, args...) }
func (b badgerLogAdapter) Warningf(f string, args ...interface{}) { b.l.Warnf(f, args...) }
func (b badgerLogAdapter) Infof(f string, args ...interface{})    { b.l.Debugf(f, args...) }
func (b badgerLogAdapter) Debugf(f string, args ...interface{})   { b.l.Debugf(f, args...) }
