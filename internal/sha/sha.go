// Package sha turns hexadecimal identifiers into fixed-width keys and splits
// those keys into the word indexes used to build a release name.
package sha

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Width is the number of hex characters consulted from an input.
const Width = 8

const (
	adverbMask    = 0xfff00000
	adjectiveMask = 0x000ff000
	nounMask      = 0x00000fff

	adverbShift    = 20
	adjectiveShift = 12
)

// ErrInvalidHex is returned when the consulted prefix is not hexadecimal.
var ErrInvalidHex = errors.New("invalid hex")

// Key is the 32-bit value derived from the first eight hex characters of an
// identifier.
type Key uint32

// FieldSet holds the three word indexes extracted from a Key.
type FieldSet struct {
	Adverb    uint32 // [0, 4095]
	Adjective uint32 // [0, 255]
	Noun      uint32 // [0, 4095]
}

// Parse normalizes s to exactly Width characters and parses it as base 16.
// Longer inputs are truncated before validation, so characters past the
// eighth are never inspected. Shorter inputs are left-padded with zeros.
func Parse(s string) (Key, error) {
	if len(s) >= Width {
		s = s[:Width]
	} else {
		s = strings.Repeat("0", Width-len(s)) + s
	}

	// strconv accepts a leading sign and underscores in some modes; reject
	// anything that is not a plain hex digit up front.
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return Key(v), nil
}

// Random returns a uniformly random key.
func Random() Key {
	return Key(rand.Uint32())
}

// Fields splits k into its adverb, adjective and noun indexes.
func (k Key) Fields() FieldSet {
	return FieldSet{
		Adverb:    (uint32(k) & adverbMask) >> adverbShift,
		Adjective: (uint32(k) & adjectiveMask) >> adjectiveShift,
		Noun:      uint32(k) & nounMask,
	}
}

// String returns the canonical eight character lowercase form of k.
func (k Key) String() string {
	return fmt.Sprintf("%08x", uint32(k))
}

// Key reassembles the key the fields were extracted from.
func (f FieldSet) Key() Key {
	return Key(f.Adverb<<adverbShift | f.Adjective<<adjectiveShift | f.Noun)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
