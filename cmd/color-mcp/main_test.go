package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
	"github.com/ironsheep/color-tools-mcp/internal/scheme"
)

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"color-tools-mcp", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	return out.String(), err
}

func writeImage(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "cli.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	return path
}

func TestConvert(t *testing.T) {
	out, err := run(t, "convert", "#8CB368")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	var got colorspace.ColorResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := colorspace.ColorResult{Hex: "#8cb368", RGB: "rgb(140, 179, 104)", HSL: "hsl(91, 33%, 55%)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("convert mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert_Format(t *testing.T) {
	out, err := run(t, "convert", "--format", "hsl", "a855f7")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if strings.TrimSpace(out) != "hsl(271, 91%, 65%)" {
		t.Errorf("got %q, want hsl(271, 91%%, 65%%)", out)
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no color", []string{"convert"}},
		{"bad color", []string{"convert", "#12345"}},
		{"bad format", []string{"convert", "--format", "cmyk", "#123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSchemes(t *testing.T) {
	out, err := run(t, "schemes", "--steps", "3", "#8cb368")
	if err != nil {
		t.Fatalf("schemes failed: %v", err)
	}

	var got scheme.Schemes
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got.Monochromatic) != 3 {
		t.Errorf("monochromatic: got %d colors, want 3", len(got.Monochromatic))
	}
	if diff := cmp.Diff(scheme.Palette{"#8cb368", "#734c97"}, got.Complementary); diff != "" {
		t.Errorf("complementary mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemes_DefaultColor(t *testing.T) {
	out, err := run(t, "schemes")
	if err != nil {
		t.Fatalf("schemes failed: %v", err)
	}
	var got scheme.Schemes
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Base != colorspace.DefaultBaseColor {
		t.Errorf("Base: got %s, want %s", got.Base, colorspace.DefaultBaseColor)
	}
}

func TestExtract(t *testing.T) {
	path := writeImage(t, color.RGBA{140, 179, 104, 255})

	out, err := run(t, "extract", path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	var got []colorspace.ColorResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got) != 1 || got[0].Hex != "#96af64" {
		t.Errorf("colors: got %+v, want one #96af64", got)
	}
}

func TestExtract_Dominant(t *testing.T) {
	path := writeImage(t, color.RGBA{0, 200, 0, 255})

	out, err := run(t, "extract", "--dominant", "--region", "center", path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	var got colorspace.ColorResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Hex != "#00c800" {
		t.Errorf("Hex: got %s, want #00c800", got.Hex)
	}
}

func TestExtract_Transparent(t *testing.T) {
	path := writeImage(t, color.RGBA{})

	out, err := run(t, "extract", path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("got %q, want []", out)
	}
}

func TestPick(t *testing.T) {
	path := writeImage(t, color.RGBA{168, 85, 247, 255})

	out, err := run(t, "pick", path, "5", "6")
	if err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	var got struct {
		X, Y  int
		Color colorspace.ColorResult
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.X != 5 || got.Y != 6 || got.Color.Hex != "#a855f7" {
		t.Errorf("got %+v, want (5,6) #a855f7", got)
	}
}

func TestPick_Errors(t *testing.T) {
	path := writeImage(t, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name string
		args []string
	}{
		{"missing args", []string{"pick", path}},
		{"bad x", []string{"pick", path, "left", "0"}},
		{"outside image", []string{"pick", path, "0", "20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestExecute_ExitCode(t *testing.T) {
	config := filepath.Join(t.TempDir(), "none.yaml")
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"success", []string{"convert", "#000000"}, 0, ""},
		{"failure", []string{"convert", "#12345"}, 1, "color-tools-mcp: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			app := newApp()
			app.Writer = &out
			app.ErrWriter = &errOut

			code := execute(app, append([]string{"color-tools-mcp", "--config", config}, tt.args...))
			if code != tt.wantCode {
				t.Errorf("exit code: got %d, want %d", code, tt.wantCode)
			}
			if tt.wantErr == "" && errOut.Len() != 0 {
				t.Errorf("unexpected stderr output %q", errOut.String())
			}
			if tt.wantErr != "" && !strings.HasPrefix(errOut.String(), tt.wantErr) {
				t.Errorf("stderr: got %q, want prefix %q", errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := run(t, "--log-level", "loud", "schemes"); err == nil {
		t.Error("expected error for unknown log level")
	}
}
