package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "chunk", ID: "ruSt"},
			wantMsg:  "chunk not found: ruSt",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "scan"},
			wantMsg:  "scan not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	// Test with underlying error separately
	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "test.png", Err: underlyingErr}
		if got := err.Error(); got != "file not found: test.png" {
			t.Errorf("Error() = %q, want %q", got, "file not found: test.png")
		}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with field",
			err:      &ValidationError{Field: "chunk type", Message: "must be 4 characters"},
			wantMsg:  "validation failed for chunk type: must be 4 characters",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without field",
			err:      &ValidationError{Message: "invalid format"},
			wantMsg:  "validation failed: invalid format",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &ParseError{Format: "PNG", Path: "image.png", Message: "truncated chunk"},
			wantMsg: "failed to parse PNG at image.png: truncated chunk",
		},
		{
			name:    "without path",
			err:     &ParseError{Format: "XMP", Message: "bad XML"},
			wantMsg: "failed to parse XMP: bad XML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Error("ParseError should unwrap to ErrInvalidInput")
			}
		})
	}
}

func TestIOError(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := &IOError{Operation: "write", Path: "/tmp/out.png", Err: underlying}
	want := "failed to write /tmp/out.png: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, underlying) {
		t.Error("IOError should unwrap to its underlying error")
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("compressed iTXt", "payload compression is out of scope")
	want := "unsupported compressed iTXt: payload compression is out of scope"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("UnsupportedError should unwrap to ErrUnsupported")
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("base error")
	wrapped := Wrap(base, "context")
	if wrapped.Error() != "context: base error" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	base := errors.New("base error")
	wrapped := Wrapf(base, "chunk %d", 3)
	if wrapped.Error() != "chunk 3: base error" {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
	if Wrapf(nil, "chunk %d", 3) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestHelperConstructors(t *testing.T) {
	if err := NewNotFound("chunk", "zzZz"); !errors.Is(err, ErrNotFound) {
		t.Error("NewNotFound should unwrap to ErrNotFound")
	}
	if err := NewValidation("type", "not a letter"); !errors.Is(err, ErrInvalidInput) {
		t.Error("NewValidation should unwrap to ErrInvalidInput")
	}
	if err := NewParse("PNG", "", "bad signature"); !errors.Is(err, ErrInvalidInput) {
		t.Error("NewParse should unwrap to ErrInvalidInput")
	}
}
