package store

import (
	"encoding/binary"
)

// Span is a closed block-number interval known to be fully indexed at a
// specific runtime spec version. Stored keyed by End so the latest span is
// an O(1) lookup and adjacency checks are O(log N).
type Span struct {
	Start       uint32
	End         uint32
	SpecVersion uint32
}

func encodeSpanKey(end uint32) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, end)
	return k
}

func decodeSpanKey(k []byte) (uint32, bool) {
	if len(k) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(k), true
}

func encodeSpanValue(start, specVersion uint32) []byte {
	v := make([]byte, 8)
	binary.BigEndian.PutUint32(v[0:4], start)
	binary.BigEndian.PutUint32(v[4:8], specVersion)
	return v
}

func decodeSpanValue(end uint32, v []byte) (Span, bool) {
	if len(v) != 8 {
		return Span{}, false
	}
	return Span{
		Start:       binary.BigEndian.Uint32(v[0:4]),
		End:         end,
		SpecVersion: binary.BigEndian.Uint32(v[4:8]),
	}, true
}

// PutSpan writes (or overwrites) one span row.
func (s *Store) PutSpan(sp Span) error {
	return s.Put("span", encodeSpanKey(sp.End), encodeSpanValue(sp.Start, sp.SpecVersion))
}

// DeleteSpan removes the span ending at end, if present.
func (s *Store) DeleteSpan(end uint32) error {
	return s.Delete("span", encodeSpanKey(end))
}

// FindSpanEndingAt does an exact O(log N) lookup by End.
func (s *Store) FindSpanEndingAt(end uint32) (Span, bool, error) {
	v, err := s.Get("span", encodeSpanKey(end))
	if err == ErrNotFound {
		return Span{}, false, nil
	}
	if err != nil {
		return Span{}, false, err
	}
	sp, ok := decodeSpanValue(end, v)
	return sp, ok, nil
}

// LoadSpans returns every span in ascending End order, eagerly merging
// adjacent spans of equal spec version whose ranges are contiguous -- the
// same eager-merge-on-load behavior spec.md §4.2 calls out as preserved
// from the source.
func (s *Store) LoadSpans() ([]Span, error) {
	var spans []Span
	it := s.SeekTree("span", nil)
	defer it.Close()
	for it.Next() {
		k := it.Key()
		end, ok := decodeSpanKey(k)
		if !ok {
			continue
		}
		v, err := s.Get("span", k)
		if err != nil {
			return nil, err
		}
		sp, ok := decodeSpanValue(end, v)
		if !ok {
			continue
		}
		spans = append(spans, sp)
	}
	return mergeAdjacentSpans(spans), nil
}

func mergeAdjacentSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return spans
	}
	merged := []Span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if last.SpecVersion == sp.SpecVersion && last.End+1 == sp.Start {
			last.End = sp.End
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// FindSpanCovering returns the span containing block, if any.
func (s *Store) FindSpanCovering(block uint32) (Span, bool, error) {
	it := s.SeekTree("span", encodeSpanKey(block))
	defer it.Close()
	if !it.Next() {
		return Span{}, false, nil
	}
	k := it.Key()
	end, ok := decodeSpanKey(k)
	if !ok {
		return Span{}, false, nil
	}
	v, err := s.Get("span", k)
	if err != nil {
		return Span{}, false, err
	}
	sp, ok := decodeSpanValue(end, v)
	if !ok || block < sp.Start || block > sp.End {
		return Span{}, false, nil
	}
	return sp, true, nil
}

// ExtendSpan implements the store-side half of spec.md §4.2's span
// maintenance: find the span ending at block-1 with a matching spec
// version and extend it; otherwise start a new length-1 span.
func (s *Store) ExtendSpan(block, specVersion uint32) error {
	if block > 0 {
		prev, ok, err := s.FindSpanEndingAt(block - 1)
		if err != nil {
			return err
		}
		if ok && prev.SpecVersion == specVersion {
			if err := s.DeleteSpan(prev.End); err != nil {
				return err
			}
			return s.PutSpan(Span{Start: prev.Start, End: block, SpecVersion: specVersion})
		}
	}
	return s.PutSpan(Span{Start: block, End: block, SpecVersion: specVersion})
}
