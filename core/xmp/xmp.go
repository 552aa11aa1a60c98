// Package xmp extracts the XMP metadata packet a PNG file may carry in an
// iTXt chunk, and runs XPath queries over it. Only uncompressed packets
// are supported; payload (de)compression is out of scope for this tool.
package xmp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/pngstash/pngstash/core/errors"
	"github.com/pngstash/pngstash/core/png"
)

// Keyword is the iTXt keyword that marks an XMP packet.
const Keyword = "XML:com.adobe.xmp"

// itxtType is the chunk type carrying international text.
const itxtType = "iTXt"

// itxt is a decoded iTXt payload. Fields follow the chunk's wire layout:
// keyword NUL flag method language NUL translated-keyword NUL text.
type itxt struct {
	Keyword    string
	Compressed bool
	Text       string
}

// Extract returns the XMP packet from the first iTXt chunk keyed
// "XML:com.adobe.xmp". A compressed packet is an UnsupportedError; absence
// is a NotFoundError.
func Extract(p *png.Png) (string, error) {
	for _, c := range p.Chunks() {
		if c.Type().String() != itxtType {
			continue
		}
		record, err := parseITXT(c.Data())
		if err != nil {
			return "", err
		}
		if record.Keyword != Keyword {
			continue
		}
		if record.Compressed {
			return "", errors.NewUnsupported("compressed iTXt", "payload compression is out of scope")
		}
		return record.Text, nil
	}
	return "", errors.NewNotFound("XMP metadata", Keyword)
}

// parseITXT splits an iTXt payload into its fields. The language tag and
// translated keyword are skipped; nothing here uses them.
func parseITXT(data []byte) (*itxt, error) {
	keyword, rest, ok := bytes.Cut(data, []byte{0})
	if !ok || len(keyword) == 0 {
		return nil, errors.NewParse("iTXt", "", "missing keyword terminator")
	}
	if len(rest) < 2 {
		return nil, errors.NewParse("iTXt", "", "truncated compression fields")
	}
	compressed := rest[0] != 0
	rest = rest[2:] // compression flag and method

	if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
		return nil, errors.NewParse("iTXt", "", "missing language tag terminator")
	}
	if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
		return nil, errors.NewParse("iTXt", "", "missing translated keyword terminator")
	}

	return &itxt{
		Keyword:    string(keyword),
		Compressed: compressed,
		Text:       string(rest),
	}, nil
}

// Query evaluates an XPath expression against an XMP packet and returns
// the inner text of every matching node.
func Query(packet, expr string) ([]string, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression %q: %w", expr, err)
	}

	doc, err := xmlquery.Parse(strings.NewReader(packet))
	if err != nil {
		return nil, errors.NewParse("XMP", "", err.Error())
	}

	var results []string
	for _, node := range xmlquery.QuerySelectorAll(doc, compiled) {
		results = append(results, node.InnerText())
	}
	return results, nil
}

// NewChunk packs an XMP packet into a fresh iTXt chunk, uncompressed, with
// empty language tag and translated keyword.
func NewChunk(packet string) (*png.Chunk, error) {
	typ, err := png.ChunkTypeFromString(itxtType)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(Keyword)
	buf.WriteByte(0) // keyword terminator
	buf.WriteByte(0) // compression flag: uncompressed
	buf.WriteByte(0) // compression method
	buf.WriteByte(0) // empty language tag
	buf.WriteByte(0) // empty translated keyword
	buf.WriteString(packet)
	return png.NewChunk(typ, buf.Bytes()), nil
}
