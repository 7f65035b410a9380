package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns it as hex,
// truncated to hexLen characters when 0 < hexLen < 16.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
