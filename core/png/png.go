package png

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pngstash/pngstash/core/errors"
)

// Signature is the fixed 8-byte preamble of every PNG file.
var Signature = [8]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// Png is the whole-file container: the signature followed by an ordered
// sequence of chunks. Order is meaningful; lookup and removal target the
// first chunk matching a type, and mutation preserves the relative order
// of the rest.
type Png struct {
	chunks []*Chunk
}

// FromChunks builds a container holding the given chunks in order.
func FromChunks(chunks []*Chunk) *Png {
	p := &Png{chunks: make([]*Chunk, len(chunks))}
	copy(p.chunks, chunks)
	return p
}

// ParsePng parses a complete PNG byte buffer: the signature followed by
// chunk records until the buffer is exhausted. The cursor advances by each
// record's declared length, so a truncated final record is a parse error.
// Chunk decode failures surface with the failing chunk's index attached.
func ParsePng(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		received := b
		if len(received) > len(Signature) {
			received = received[:len(Signature)]
		}
		return nil, &SignatureError{Received: received}
	}

	p := &Png{}
	rest := b[len(Signature):]
	for i := 0; len(rest) > 0; i++ {
		if len(rest) < chunkOverhead {
			return nil, errors.NewParse("PNG", "", fmt.Sprintf("chunk %d: truncated record (%d trailing bytes)", i, len(rest)))
		}
		declared := binary.BigEndian.Uint32(rest[0:4])
		total := chunkOverhead + int(declared)
		if total > len(rest) {
			return nil, errors.NewParse("PNG", "", fmt.Sprintf("chunk %d: declared length %d exceeds remaining %d bytes", i, declared, len(rest)-chunkOverhead))
		}
		chunk, err := DecodeChunk(rest[:total])
		if err != nil {
			return nil, errors.Wrapf(err, "chunk %d", i)
		}
		p.chunks = append(p.chunks, chunk)
		rest = rest[total:]
	}
	return p, nil
}

// AppendChunk adds a chunk to the end of the sequence.
func (p *Png) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// ChunkByType returns the first chunk whose type renders as the given
// text.
func (p *Png) ChunkByType(typ string) (*Chunk, error) {
	for _, c := range p.chunks {
		if c.Type().String() == typ {
			return c, nil
		}
	}
	return nil, errors.NewNotFound("chunk", typ)
}

// RemoveFirstChunk removes and returns the first chunk whose type renders
// as the given text, preserving the order of the remaining chunks.
func (p *Png) RemoveFirstChunk(typ string) (*Chunk, error) {
	for i, c := range p.chunks {
		if c.Type().String() == typ {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, errors.NewNotFound("chunk", typ)
}

// Chunks returns the chunk sequence in stored order. Callers must not
// modify the returned slice.
func (p *Png) Chunks() []*Chunk {
	return p.chunks
}

// Bytes serializes the container: signature followed by each chunk's
// encoding in stored order. Parsing the result yields an element-wise
// identical container.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += chunkOverhead + len(c.Data())
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}
