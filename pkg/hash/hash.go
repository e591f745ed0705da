package hash

import (
	"github.com/go-faster/city"

	"github.com/matzehuels/vfxtool/pkg/errors"
)

const (
	// seed0 is the first CityHash seed shared by every engine hash.
	seed0 uint64 = 0x9ae16a3b2f90404f

	// StringMask keeps the low 48 bits of a StrCode.
	StringMask uint64 = 0xFFFFFFFFFFFF
)

// String returns the 48-bit StrCode of text.
//
// The hash is CityHash64 with seeds over text followed by a NUL byte. The
// second seed packs the first byte of text into bits 16 and up and adds the
// length; it is zero for the empty string.
func String(text string) uint64 {
	var seed1 uint64
	if len(text) > 0 {
		seed1 = uint64(uint32(text[0])<<16 + uint32(len(text)))
	}
	buf := make([]byte, len(text)+1)
	copy(buf, text)
	return city.Hash64WithSeeds(buf, seed0, seed1) & StringMask
}

// StringPtr is [String] for optional input. A nil text is a caller bug and
// is reported as INVALID_ARGUMENT instead of hashing to a valid-looking key.
func StringPtr(text *string) (uint64, error) {
	if text == nil {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "hash input is nil")
	}
	return String(*text), nil
}

// String32 returns the low 32 bits of [String]. Variation names are stored
// in 32 bits.
func String32(text string) uint32 {
	return uint32(String(text))
}
