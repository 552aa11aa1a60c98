package digest

import (
	"testing"
)

func TestSum(t *testing.T) {
	// Known vectors for the empty input.
	got := Sum(nil)
	wantSHA := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	wantB3 := "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"
	if got.SHA256 != wantSHA {
		t.Errorf("SHA256 = %s, want %s", got.SHA256, wantSHA)
	}
	if got.BLAKE3 != wantB3 {
		t.Errorf("BLAKE3 = %s, want %s", got.BLAKE3, wantB3)
	}
}

func TestSumDeterministic(t *testing.T) {
	data := []byte("This is where your secret message will be!")
	a := Sum(data)
	b := Sum(data)
	if a != b {
		t.Error("Sum is not deterministic")
	}
	if a.SHA256 == a.BLAKE3 {
		t.Error("fingerprints should differ between algorithms")
	}
}

func TestSumSensitivity(t *testing.T) {
	a := Sum([]byte("payload"))
	b := Sum([]byte("paylode"))
	if a.SHA256 == b.SHA256 || a.BLAKE3 == b.BLAKE3 {
		t.Error("different payloads produced identical fingerprints")
	}
}

func TestSHA256Hex(t *testing.T) {
	data := []byte("payload")
	if got, want := SHA256Hex(data), Sum(data).SHA256; got != want {
		t.Errorf("SHA256Hex = %s, want %s", got, want)
	}
}
