package png

import (
	"fmt"

	"github.com/pngstash/pngstash/core/errors"
)

// InvalidByteError reports a non-letter byte in a textual chunk type.
type InvalidByteError struct {
	Byte     byte // The offending byte
	Position int  // Zero-based position within the 4-character string
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("invalid byte in chunk type: 0x%02x at position %d (must be an ASCII letter)", e.Byte, e.Position)
}

func (e *InvalidByteError) Unwrap() error {
	return errors.ErrInvalidInput
}

// InvalidChunkTypeError reports raw chunk type bytes whose reserved bit is set.
type InvalidChunkTypeError struct {
	Bytes [4]byte // The bytes as received
}

func (e *InvalidChunkTypeError) Error() string {
	return fmt.Sprintf("invalid chunk type %v: reserved bit is set", e.Bytes)
}

func (e *InvalidChunkTypeError) Unwrap() error {
	return errors.ErrInvalidInput
}

// ChecksumError reports a chunk whose stored CRC disagrees with the CRC
// computed over its type and data. This means the record was corrupted or
// tampered with after it was written.
type ChecksumError struct {
	Received uint32 // CRC stored in the record
	Expected uint32 // CRC computed from type and data
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("bad chunk CRC (received %08x, expected %08x)", e.Received, e.Expected)
}

func (e *ChecksumError) Unwrap() error {
	return errors.ErrCorrupted
}

// SignatureError reports a buffer that does not begin with the PNG signature.
type SignatureError struct {
	Received []byte // Up to the first 8 bytes of the buffer
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("bad PNG signature (received % x)", e.Received)
}

func (e *SignatureError) Unwrap() error {
	return errors.ErrCorrupted
}

// EncodingError reports chunk data that is not valid UTF-8 when a text
// interpretation was requested.
type EncodingError struct {
	ChunkType string // Text rendering of the chunk's type
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("chunk %s data is not valid UTF-8", e.ChunkType)
}

func (e *EncodingError) Unwrap() error {
	return errors.ErrInvalidInput
}
