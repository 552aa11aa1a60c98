// Command pngstash hides, reads and removes auxiliary data chunks in PNG
// files. It is a thin shell over the core/png container API: every command
// reads a whole file, operates on the parsed chunk sequence, and writes
// the re-encoded bytes back when it mutated anything.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/pngstash/pngstash/core/digest"
	"github.com/pngstash/pngstash/core/filter"
	"github.com/pngstash/pngstash/core/png"
	"github.com/pngstash/pngstash/core/xmp"
	"github.com/pngstash/pngstash/internal/catalog"
	"github.com/pngstash/pngstash/internal/fileutil"
	"github.com/pngstash/pngstash/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for pngstash.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format (text, json)"`

	Encode  EncodeCmd  `cmd:"" help:"Encode a message into a PNG file as a new chunk"`
	Decode  DecodeCmd  `cmd:"" help:"Decode the message stored in a chunk"`
	Remove  RemoveCmd  `cmd:"" help:"Remove the first chunk of a given type"`
	Print   PrintCmd   `cmd:"" help:"Print the chunks of a PNG file"`
	Verify  VerifyCmd  `cmd:"" help:"Verify chunk integrity and report fingerprints"`
	Meta    MetaCmd    `cmd:"" help:"Extract XMP metadata from the iTXt chunk"`
	Scan    ScanCmd    `cmd:"" help:"Record a chunk inventory into a catalog database"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// loadPng reads and parses a PNG file.
func loadPng(path string) (*png.Png, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := png.ParsePng(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// savePng writes a container back to disk, defaulting to the input path
// when no output path was given.
func savePng(p *png.Png, inPath, outPath string) (string, error) {
	path := outPath
	if path == "" {
		path = inPath
	}
	if err := fileutil.WriteFileAtomic(path, p.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// EncodeCmd appends a message chunk to a PNG file.
type EncodeCmd struct {
	File    string `arg:"" help:"Path to the PNG file" type:"existingfile"`
	Type    string `arg:"" help:"4-character chunk type for the message"`
	Message string `arg:"" help:"Message to hide in the file"`
	Out     string `short:"o" help:"Output path (defaults to rewriting the input)" type:"path"`
}

func (c *EncodeCmd) Run() error {
	typ, err := png.ChunkTypeFromString(c.Type)
	if err != nil {
		return err
	}

	p, err := loadPng(c.File)
	if err != nil {
		return err
	}

	chunk := png.NewChunk(typ, []byte(c.Message))
	p.AppendChunk(chunk)

	path, err := savePng(p, c.File, c.Out)
	if err != nil {
		return err
	}

	fmt.Printf("Encoded %d bytes into chunk %s\n", chunk.Length(), chunk.Type())
	fmt.Printf("Written: %s\n", path)
	return nil
}

// DecodeCmd prints the payload of the first chunk matching a type.
type DecodeCmd struct {
	File string `arg:"" help:"Path to the PNG file" type:"existingfile"`
	Type string `arg:"" help:"4-character chunk type to look up"`
}

func (c *DecodeCmd) Run() error {
	p, err := loadPng(c.File)
	if err != nil {
		return err
	}

	chunk, err := p.ChunkByType(c.Type)
	if err != nil {
		return err
	}

	message, err := chunk.DataAsString()
	if err != nil {
		return err
	}
	fmt.Println(message)
	return nil
}

// RemoveCmd removes the first chunk matching a type and rewrites the file.
type RemoveCmd struct {
	File string `arg:"" help:"Path to the PNG file" type:"existingfile"`
	Type string `arg:"" help:"4-character chunk type to remove"`
	Out  string `short:"o" help:"Output path (defaults to rewriting the input)" type:"path"`
}

func (c *RemoveCmd) Run() error {
	p, err := loadPng(c.File)
	if err != nil {
		return err
	}

	removed, err := p.RemoveFirstChunk(c.Type)
	if err != nil {
		return err
	}

	path, err := savePng(p, c.File, c.Out)
	if err != nil {
		return err
	}

	fmt.Printf("Removed chunk %s\n", removed)
	fmt.Printf("Written: %s\n", path)
	return nil
}

// PrintCmd lists the chunks of a file, optionally filtered.
type PrintCmd struct {
	File   string `arg:"" help:"Path to the PNG file" type:"existingfile"`
	Filter string `short:"f" help:"Filter expression, e.g. 'ancillary && safe' or 'type=tEXt'"`
}

func (c *PrintCmd) Run() error {
	p, err := loadPng(c.File)
	if err != nil {
		return err
	}

	var match *filter.Filter
	if c.Filter != "" {
		match, err = filter.Parse(c.Filter)
		if err != nil {
			return err
		}
	}

	printed := 0
	for i, chunk := range p.Chunks() {
		if match != nil && !match.Match(chunk) {
			continue
		}
		typ := chunk.Type()
		fmt.Printf("[%d] %s  critical=%v public=%v safe-to-copy=%v\n",
			i, chunk, typ.IsCritical(), typ.IsPublic(), typ.IsSafeToCopy())
		printed++
	}

	fmt.Printf("Total: %d chunk(s)\n", printed)
	return nil
}

// VerifyCmd re-checks every chunk's CRC and type and reports fingerprints.
// Parsing already rejects bad CRCs, so a file that parses is sound; the
// value here is the per-chunk report and the digests.
type VerifyCmd struct {
	File string `arg:"" help:"Path to the PNG file" type:"existingfile"`
}

func (c *VerifyCmd) Run() error {
	data, err := fileutil.ReadFile(c.File)
	if err != nil {
		return err
	}
	p, err := png.ParsePng(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	fileSum := digest.Sum(data)
	fmt.Printf("File: %s (%d bytes)\n", c.File, len(data))
	fmt.Printf("  SHA-256: %s\n", fileSum.SHA256)
	fmt.Printf("  BLAKE3:  %s\n", fileSum.BLAKE3)
	fmt.Println()

	invalid := 0
	for i, chunk := range p.Chunks() {
		status := "[OK]  "
		if !chunk.Type().IsValid() {
			status = "[WARN]"
			invalid++
		}
		fmt.Printf("  %s [%d] %s  payload sha256 %s\n",
			status, i, chunk, digest.SHA256Hex(chunk.Data()))
	}

	fmt.Println()
	if invalid > 0 {
		fmt.Printf("%d chunk(s) with reserved bit set\n", invalid)
	} else {
		fmt.Println("All chunks verified.")
	}
	return nil
}

// MetaCmd extracts XMP metadata from the iTXt chunk.
type MetaCmd struct {
	File  string `arg:"" help:"Path to the PNG file" type:"existingfile"`
	Query string `short:"q" help:"XPath expression to evaluate against the XMP packet"`
}

func (c *MetaCmd) Run() error {
	p, err := loadPng(c.File)
	if err != nil {
		return err
	}

	packet, err := xmp.Extract(p)
	if err != nil {
		return err
	}

	if c.Query == "" {
		fmt.Println(packet)
		return nil
	}

	results, err := xmp.Query(packet, c.Query)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Println(r)
	}
	return nil
}

// ScanCmd records a file's chunk inventory into a catalog database.
type ScanCmd struct {
	File string `arg:"" help:"Path to the PNG file" type:"existingfile"`
	DB   string `name:"db" default:"pngstash.db" help:"Catalog database path" type:"path"`
}

func (c *ScanCmd) Run() error {
	p, err := loadPng(c.File)
	if err != nil {
		return err
	}

	cat, err := catalog.Open(c.DB)
	if err != nil {
		return err
	}
	defer cat.Close()

	scanID, err := cat.RecordScan(c.File, p)
	if err != nil {
		return err
	}

	fmt.Printf("Scan recorded: %s\n", scanID)
	fmt.Printf("  File: %s\n", c.File)
	fmt.Printf("  Chunks: %d\n", len(p.Chunks()))
	fmt.Printf("  Catalog: %s\n", c.DB)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("pngstash %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pngstash"),
		kong.Description("Hide, read and remove auxiliary data chunks in PNG files."),
		kong.UsageOnError(),
	)

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), format)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pngstash: error: %v\n", err)
		os.Exit(1)
	}
}
