// internal/room/code.go
package room

import (
	"math/rand"
	"strconv"
	"time"
)

const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// codeSuffixLen is the number of random base-36 characters after the timestamp.
const codeSuffixLen = 4

// NewCode returns a room code: the base-36 millisecond timestamp followed by a short random
// suffix. Codes are practically unique, not guaranteed.
func NewCode(now time.Time, rng *rand.Rand) string {
	suffix := make([]byte, codeSuffixLen)
	for i := range suffix {
		suffix[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return strconv.FormatInt(now.UnixMilli(), 36) + string(suffix)
}
