package hashing

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// TextHashSize is the size in bytes of a TextHash digest.
const TextHashSize = 8

// TextHash is a small rolling XOR hash over the tokens of a test case. It is
// not cryptographic; it exists so that downstream reports can tell when a
// test case has been edited.
//
// TextHash is a value type: copying it forks the hash state, which lets the
// parser hash the shared games once and then extend a copy per case.
type TextHash struct {
	buf   [TextHashSize]byte
	pos   int
	count uint64
	sum   string
}

// Update folds data into the hash. Update panics if Sum has been called.
func (h *TextHash) Update(data string) {
	if h.sum != "" {
		panic("hashing: TextHash.Update after Sum")
	}
	for i := 0; i < len(data); i++ {
		h.buf[h.pos] ^= data[i]
		h.pos = (h.pos + 1) % TextHashSize
		h.count++
	}
}

// Sum finalizes the hash and returns it as 16 upper case hex digits.
// Calling Sum again returns the same string.
func (h *TextHash) Sum() string {
	if h.sum != "" {
		return h.sum
	}

	// Mix in the byte count so repeating input that wraps the buffer
	// does not cancel out.
	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], h.count)
	for i := range count {
		h.buf[i] ^= count[i]
	}

	var sb strings.Builder
	sb.Grow(2 * TextHashSize)
	for _, b := range h.buf {
		fmt.Fprintf(&sb, "%02X", b)
	}
	h.sum = sb.String()
	return h.sum
}

// Finalized reports whether Sum has been called.
func (h *TextHash) Finalized() bool {
	return h.sum != ""
}

// Reset clears the hash so it can be reused.
func (h *TextHash) Reset() {
	*h = TextHash{}
}

// HashStrings is a convenience that hashes parts in order and returns the sum.
func HashStrings(parts ...string) string {
	var h TextHash
	for _, p := range parts {
		h.Update(p)
	}
	return h.Sum()
}
