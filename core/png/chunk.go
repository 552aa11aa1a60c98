package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"

	"github.com/pngstash/pngstash/core/errors"
	"github.com/pngstash/pngstash/internal/logging"
)

// chunkOverhead is the encoded size of a chunk with an empty payload:
// 4-byte length, 4-byte type, 4-byte CRC.
const chunkOverhead = 12

// Chunk is one length-prefixed record of the PNG container: a type code,
// an opaque payload and a CRC-32 (ISO-HDLC polynomial) over type and
// payload. The payload is owned by the chunk and never aliased.
type Chunk struct {
	length uint32
	typ    ChunkType
	data   []byte
	crc    uint32
}

// NewChunk builds a chunk from a type and payload, computing the length
// and CRC fields.
func NewChunk(t ChunkType, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{
		length: uint32(len(owned)),
		typ:    t,
		data:   owned,
		crc:    checksum(t, owned),
	}
}

// DecodeChunk decodes one complete chunk record. The buffer must hold the
// entire record: big-endian length, type, payload, big-endian CRC. A
// declared length that disagrees with the actual payload size is tolerated
// and corrected with a warning; a CRC mismatch is a hard failure.
func DecodeChunk(b []byte) (*Chunk, error) {
	if len(b) < chunkOverhead {
		return nil, errors.NewParse("chunk", "", fmt.Sprintf("record too short: %d bytes, need at least %d", len(b), chunkOverhead))
	}

	declaredLength := binary.BigEndian.Uint32(b[0:4])
	typ, err := ChunkTypeFromBytes([4]byte{b[4], b[5], b[6], b[7]})
	if err != nil {
		return nil, err
	}

	data := make([]byte, len(b)-chunkOverhead)
	copy(data, b[8:len(b)-4])
	declaredCRC := binary.BigEndian.Uint32(b[len(b)-4:])

	length := declaredLength
	if length != uint32(len(data)) {
		// Lenient recovery: trust the bytes actually present over the
		// declared length. Rejecting here would be a behavior change.
		logging.Warn("chunk length mismatch, using actual payload size",
			"type", typ.String(),
			"declared", declaredLength,
			"actual", len(data))
		length = uint32(len(data))
	}

	actualCRC := checksum(typ, data)
	if declaredCRC != actualCRC {
		return nil, &ChecksumError{Received: declaredCRC, Expected: actualCRC}
	}

	return &Chunk{
		length: length,
		typ:    typ,
		data:   data,
		crc:    declaredCRC,
	}, nil
}

// checksum computes the chunk CRC over the type code followed by the
// payload. crc32.IEEE is the ISO-HDLC polynomial PNG specifies.
func checksum(t ChunkType, data []byte) uint32 {
	code := t.Bytes()
	crc := crc32.Update(0, crc32.IEEETable, code[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

// Length returns the payload byte count.
func (c *Chunk) Length() uint32 {
	return c.length
}

// Type returns the chunk's type code.
func (c *Chunk) Type() ChunkType {
	return c.typ
}

// Data returns the payload bytes. Callers must not modify the returned
// slice.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the chunk's checksum.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// DataAsString interprets the payload as UTF-8 text.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", &EncodingError{ChunkType: c.typ.String()}
	}
	return string(c.data), nil
}

// Bytes encodes the chunk in wire order: length, type, payload, CRC. For
// any chunk produced by NewChunk or DecodeChunk, DecodeChunk(c.Bytes())
// reproduces the chunk exactly.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, 0, chunkOverhead+len(c.data))
	buf = binary.BigEndian.AppendUint32(buf, c.length)
	code := c.typ.Bytes()
	buf = append(buf, code[:]...)
	buf = append(buf, c.data...)
	buf = binary.BigEndian.AppendUint32(buf, c.crc)
	return buf
}

// String renders a short human-readable summary of the chunk.
func (c *Chunk) String() string {
	return fmt.Sprintf("%s (%d bytes, crc %08x)", c.typ, c.length, c.crc)
}
