// Package png manipulates the chunk-based PNG container format: typed
// 4-byte chunk codes, length-prefixed CRC-checked chunk records, and the
// whole-file signature-plus-chunks structure. It covers the container
// layer only; pixel data is carried opaquely and never decoded.
package png

import (
	"github.com/pngstash/pngstash/core/errors"
)

// caseBit is bit 5 of an ASCII letter: clear for uppercase, set for
// lowercase. The PNG chunk naming scheme overloads it with semantic
// meaning, one property per byte of the type code.
const caseBit = 1 << 5

// ChunkType is the 4-byte type code of a chunk. The letter case of each
// byte encodes one property of the chunk (see the Is* methods). Values are
// immutable once constructed.
type ChunkType struct {
	code [4]byte
}

// ChunkTypeFromString constructs a ChunkType from a 4-character string.
// Every character must be an ASCII letter; case is not otherwise
// restricted here, so types that fail IsValid can still be constructed
// (the original files they came from may legitimately contain them).
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, errors.NewValidation("chunk type", "must be exactly 4 characters")
	}
	var t ChunkType
	for i := 0; i < 4; i++ {
		b := s[i]
		if !isLetter(b) {
			return ChunkType{}, &InvalidByteError{Byte: b, Position: i}
		}
		t.code[i] = b
	}
	return t, nil
}

// ChunkTypeFromBytes constructs a ChunkType from raw bytes read out of a
// chunk record. The bytes are accepted only when the reserved bit is
// clear; no letter-range check is applied.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	t := ChunkType{code: b}
	if !t.IsValid() {
		return ChunkType{}, &InvalidChunkTypeError{Bytes: b}
	}
	return t, nil
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Bytes returns the packed 4-byte code. Used by CRC computation and
// serialization.
func (t ChunkType) Bytes() [4]byte {
	return t.code
}

// String renders the code as a 4-character ASCII string.
func (t ChunkType) String() string {
	return string(t.code[:])
}

// IsCritical reports whether the chunk is required to display the file:
// the first byte is uppercase.
func (t ChunkType) IsCritical() bool {
	return t.code[0]&caseBit == 0
}

// IsPublic reports whether the type is publicly registered: the second
// byte is uppercase.
func (t ChunkType) IsPublic() bool {
	return t.code[1]&caseBit == 0
}

// IsReservedBitValid reports whether the reserved bit is clear: the third
// byte is uppercase. A type with this bit set is not well formed.
func (t ChunkType) IsReservedBitValid() bool {
	return t.code[2]&caseBit == 0
}

// IsValid is equivalent to IsReservedBitValid.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

// IsSafeToCopy reports whether editors that do not recognize the chunk may
// copy it across file modifications: the fourth byte is lowercase.
func (t ChunkType) IsSafeToCopy() bool {
	return t.code[3]&caseBit != 0
}
