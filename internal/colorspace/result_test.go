package colorspace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewColorResult(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want ColorResult
	}{
		{
			"leaf",
			RGB{140, 179, 104},
			ColorResult{Hex: "#8cb368", RGB: "rgb(140, 179, 104)", HSL: "hsl(91, 33%, 55%)"},
		},
		{
			"purple",
			RGB{168, 85, 247},
			ColorResult{Hex: "#a855f7", RGB: "rgb(168, 85, 247)", HSL: "hsl(271, 91%, 65%)"},
		},
		{
			"black",
			RGB{0, 0, 0},
			ColorResult{Hex: "#000000", RGB: "rgb(0, 0, 0)", HSL: "hsl(0, 0%, 0%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, NewColorResult(tt.c)); diff != "" {
				t.Errorf("NewColorResult mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColorResultFromHex(t *testing.T) {
	got, err := ColorResultFromHex("8CB368")
	if err != nil {
		t.Fatalf("ColorResultFromHex failed: %v", err)
	}
	if got.Hex != "#8cb368" {
		t.Errorf("Hex: got %s, want #8cb368", got.Hex)
	}

	if _, err := ColorResultFromHex("nope"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatHex, false},
		{"hex", FormatHex, false},
		{"RGB", FormatRGBString, false},
		{" hsl ", FormatHSLString, false},
		{"cmyk", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorResult_Value(t *testing.T) {
	r := NewColorResult(RGB{255, 0, 0})
	if got := r.Value(FormatHex); got != "#ff0000" {
		t.Errorf("hex: got %s", got)
	}
	if got := r.Value(FormatRGBString); got != "rgb(255, 0, 0)" {
		t.Errorf("rgb: got %s", got)
	}
	if got := r.Value(FormatHSLString); got != "hsl(0, 100%, 50%)" {
		t.Errorf("hsl: got %s", got)
	}
}
