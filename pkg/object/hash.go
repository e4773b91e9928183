package object

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// hashSize is 20 bytes (160 bits), rendered as 40 hex characters — matching
// the commit-id width Git users see in `log` and `status` output.
const hashSize = 20

// HashBytes computes the content hash of data alone and returns it as a
// lowercase hex-encoded Hash, with no type/length envelope. Stored object
// ids, blob ids included, come from HashObject instead, so the two values
// differ for the same data.
func HashBytes(data []byte) Hash {
	return Hash(hex.EncodeToString(sum(data)))
}

// HashObject computes the hash of the envelope "type len\0content", mirroring
// Git's object hashing scheme.
func HashObject(objType ObjectType, data []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(data))
	buf := make([]byte, 0, len(header)+len(data))
	buf = append(buf, header...)
	buf = append(buf, data...)
	return Hash(hex.EncodeToString(sum(buf)))
}

func sum(data []byte) []byte {
	h, err := blake2b.New(hashSize, nil)
	if err != nil {
		// hashSize is a constant within blake2b's supported 1..64 range;
		// this only fails for a bad key, which we never pass.
		panic(fmt.Sprintf("object: blake2b.New(%d): %v", hashSize, err))
	}
	h.Write(data)
	return h.Sum(nil)
}
