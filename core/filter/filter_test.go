package filter

import (
	"testing"

	"github.com/pngstash/pngstash/core/png"
)

func chunkOf(t *testing.T, typ string) *png.Chunk {
	t.Helper()
	ct, err := png.ChunkTypeFromString(typ)
	if err != nil {
		t.Fatalf("ChunkTypeFromString(%q) failed: %v", typ, err)
	}
	return png.NewChunk(ct, []byte("data"))
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"bogusflag",
		"type=toolong",
		"type=ab",
		"critical &&",
		"(critical",
		"type=",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if _, err := Parse(src); err == nil {
				t.Errorf("Parse(%q) should fail", src)
			}
		})
	}
}

func TestMatchFlags(t *testing.T) {
	tests := []struct {
		expr string
		typ  string
		want bool
	}{
		{"critical", "RuSt", true},
		{"critical", "ruSt", false},
		{"ancillary", "ruSt", true},
		{"public", "RUSt", true},
		{"public", "RuSt", false},
		{"private", "RuSt", true},
		{"safe", "RuSt", true},
		{"safe", "RuST", false},
		{"unsafe", "RuST", true},
		{"valid", "RuSt", true},
		{"invalid", "RuSt", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr+"/"+tt.typ, func(t *testing.T) {
			f, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := f.Match(chunkOf(t, tt.typ)); got != tt.want {
				t.Errorf("Match(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestMatchType(t *testing.T) {
	f, err := Parse("type=tEXt")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !f.Match(chunkOf(t, "tEXt")) {
		t.Error("type=tEXt should match a tEXt chunk")
	}
	if f.Match(chunkOf(t, "iTXt")) {
		t.Error("type=tEXt should not match an iTXt chunk")
	}
}

func TestMatchBooleanOperators(t *testing.T) {
	tests := []struct {
		expr string
		typ  string
		want bool
	}{
		{"critical && safe", "RuSt", true},
		{"critical && safe", "RuST", false},
		{"critical || public", "ruSt", false},
		{"critical || public", "rUSt", true},
		{"!critical", "ruSt", true},
		{"!(critical || public)", "ruSt", true},
		{"!(critical || public)", "RuSt", false},
		{"type=tEXt || type=iTXt", "iTXt", true},
		{"ancillary && private && safe", "ruSt", true},
		{"critical && type=IHDR", "IHDR", true},
		{"critical && type=IHDR", "IEND", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr+"/"+tt.typ, func(t *testing.T) {
			f, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}
			if got := f.Match(chunkOf(t, tt.typ)); got != tt.want {
				t.Errorf("Match(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestPrecedence(t *testing.T) {
	// && binds tighter than ||: this reads as valid || (critical && unsafe).
	f, err := Parse("valid || critical && unsafe")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// ruSt: valid, so the whole expression holds even though it is not
	// critical.
	if !f.Match(chunkOf(t, "ruSt")) {
		t.Error("expected || to bind looser than &&")
	}
}
