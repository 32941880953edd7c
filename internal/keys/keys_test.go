package keys

import (
	"bytes"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func allBytes32Kinds() []Kind {
	var out []Kind
	for _, k := range AllKinds() {
		if kindFamily[k] == familyBytes32 {
			out = append(out, k)
		}
	}
	return out
}

func allU32Kinds() []Kind {
	var out []Kind
	for _, k := range AllKinds() {
		if kindFamily[k] == familyU32 {
			out = append(out, k)
		}
	}
	return out
}

// TestRoundTrip fuzzes every key kind: decode(encode(a, p)) must equal (a, p).
func TestRoundTrip(t *testing.T) {
	f := fuzz.New()

	t.Run("variant", func(t *testing.T) {
		var pallet, variant uint8
		var pos Position
		for i := 0; i < 200; i++ {
			f.Fuzz(&pallet)
			f.Fuzz(&variant)
			f.Fuzz(&pos)
			a := VariantAttr(pallet, variant)
			gotA, gotP, err := Decode(KindVariant, Encode(a, pos))
			require.NoError(t, err)
			require.Equal(t, a, gotA)
			require.Equal(t, pos, gotP)
		}
	})

	for _, kind := range allBytes32Kinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			var raw [32]byte
			var pos Position
			for i := 0; i < 200; i++ {
				f.Fuzz(&raw)
				f.Fuzz(&pos)
				a := Bytes32Attr(kind, raw)
				gotA, gotP, err := Decode(kind, Encode(a, pos))
				require.NoError(t, err)
				require.Equal(t, a, gotA)
				require.Equal(t, pos, gotP)
			}
		})
	}

	for _, kind := range allU32Kinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			var v uint32
			var pos Position
			for i := 0; i < 200; i++ {
				f.Fuzz(&v)
				f.Fuzz(&pos)
				a := U32Attr(kind, v)
				gotA, gotP, err := Decode(kind, Encode(a, pos))
				require.NoError(t, err)
				require.Equal(t, a, gotA)
				require.Equal(t, pos, gotP)
			}
		})
	}
}

// TestOrdering checks byte-lexicographic ordering matches (block, event)
// ordering for a fixed attribute.
func TestOrdering(t *testing.T) {
	a := Bytes32Attr(KindAccountID, [32]byte{0x11})
	positions := []Position{
		{Block: 50, Event: 5},
		{Block: 100, Event: 0},
		{Block: 100, Event: 1},
		{Block: 200, Event: 0},
	}
	for i := range positions {
		for j := range positions {
			pi, pj := positions[i], positions[j]
			ei, ej := Encode(a, pi), Encode(a, pj)
			switch {
			case pi.Less(pj):
				require.Negative(t, bytes.Compare(ei, ej), "%v < %v expected", pi, pj)
			case pj.Less(pi):
				require.Positive(t, bytes.Compare(ei, ej), "%v > %v expected", pi, pj)
			default:
				require.Zero(t, bytes.Compare(ei, ej))
			}
		}
	}
}

// TestMalformedKey ensures decode on a wrong-length key fails rather than
// silently misparsing.
func TestMalformedKey(t *testing.T) {
	_, _, err := Decode(KindAccountID, []byte{0x01, 0x02, 0x03})
	require.Error(t, err)
	var malformed ErrMalformedKey
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, KindAccountID, malformed.Kind)
}

// TestInjective checks that two distinct (attribute, position) pairs never
// encode to the same bytes, for a handful of kinds sharing the same family.
func TestInjective(t *testing.T) {
	for _, kind := range []Kind{KindPreimageHash, KindProposalHash, KindTipHash} {
		seen := map[string]bool{}
		for _, b := range [][32]byte{{0xAA}, {0xBB}, {0xAA, 0x01}} {
			for _, pos := range []Position{{Block: 1, Event: 0}, {Block: 1, Event: 1}} {
				enc := string(Encode(Bytes32Attr(kind, b), pos))
				require.False(t, seen[enc], "collision within kind=%v for bytes=%v pos=%v", kind, b, pos)
				seen[enc] = true
			}
		}
	}
}
