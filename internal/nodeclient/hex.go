package nodeclient

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

func parseHexU32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("nodeclient: malformed block number %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseHash32(s string) ([32]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || len(b) != 32 {
		return [32]byte{}, fmt.Errorf("nodeclient: malformed hash %q", s)
	}
	var out [32]byte
	copy(out[:], b)
	return out, nil
}

func hashHex(h [32]byte) string {
	return "0x" + hex.EncodeToString(h[:])
}

// decodeHexBlob decodes an arbitrary-length 0x-prefixed hex string, unlike
// parseHash32 which is pinned to 32 bytes.
func decodeHexBlob(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("nodeclient: malformed hex blob: %w", err)
	}
	return b, nil
}
