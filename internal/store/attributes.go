package store

import "github.com/idn-labs/substrate-index/internal/keys"

// InsertAttribute writes one index row for attr at pos. Idempotent per
// Store.Insert.
func (s *Store) InsertAttribute(attr keys.Attribute, pos keys.Position) error {
	return s.Insert(attr.Kind.TreeName(), keys.Encode(attr, pos))
}

// QueryPositions returns up to limit positions for attr in descending
// (block, event_index) order, served directly by the key layout's
// lexicographic ordering (I3) -- no sort step.
func (s *Store) QueryPositions(attr keys.Attribute, limit int) ([]keys.Position, error) {
	it := s.ScanPrefix(attr.Kind.TreeName(), keys.Prefix(attr), true)
	defer it.Close()

	out := make([]keys.Position, 0, limit)
	for len(out) < limit && it.Next() {
		_, pos, err := keys.Decode(attr.Kind, it.Key())
		if err != nil {
			// A malformed row is dropped, never surfaced to the caller (C1 contract).
			continue
		}
		out = append(out, pos)
	}
	return out, nil
}

// HasVariant reports whether the variant tree already has a row for
// (pallet, variant, pos) -- used by tests exercising I1 directly.
func (s *Store) HasVariant(pallet, variant uint8, pos keys.Position) (bool, error) {
	attr := keys.VariantAttr(pallet, variant)
	_, err := s.Get("variant", keys.Encode(attr, pos))
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
