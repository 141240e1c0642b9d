package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marben/canvas_mandel/view"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeLogged(t, args...)
	return out, err
}

// executeLogged is execute that also returns the log output.
func executeLogged(t *testing.T, args ...string) (stdout, logs string, err error) {
	t.Helper()
	var out, logBuf bytes.Buffer
	root := New(&logBuf, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), logBuf.String(), err
}

func TestParseClick(t *testing.T) {
	tests := []struct {
		in      string
		want    view.PointerDown
		wantErr bool
	}{
		{in: "400,300", want: view.PointerDown{X: 400, Y: 300, Button: view.ButtonPrimary}},
		{in: "1.5, 2.5", want: view.PointerDown{X: 1.5, Y: 2.5, Button: view.ButtonPrimary}},
		{in: "0,0,right", want: view.PointerDown{Button: view.ButtonSecondary}},
		{in: "0,0,middle", want: view.PointerDown{Button: view.ButtonAuxiliary}},
		{in: "0,0,left", want: view.PointerDown{Button: view.ButtonPrimary}},
		{in: "400", wantErr: true},
		{in: "a,b", wantErr: true},
		{in: "1,2,3,4", wantErr: true},
		{in: "1,2,thumb", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseClick(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseClick(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClick(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseClick(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestRenderCommandWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	out, err := execute(t, "render", "-o", path, "--width", "40", "--height", "30")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("bounds = %v, want 40x30", b)
	}
	if !strings.Contains(out, path) {
		t.Errorf("summary does not name the output file:\n%s", out)
	}
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := execute(t, "render", "-o", "-", "--width", "16", "--height", "12", "--workers", "3")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(strings.NewReader(out))
	if err != nil {
		t.Fatalf("stdout is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("bounds = %v, want 16x12", b)
	}
}

func TestRenderCommandReplaysClicks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoom.png")
	out, err := execute(t, "render", "-o", path, "--width", "40", "--height", "30",
		"--click", "20,15", "--precision", "100")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"3.2", "300", "-1+0i"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "o.png")
	out, err := execute(t, "render", "-o", path, "--width", "8", "--height", "6",
		"--preset", "seahorse", "--span", "0.5", "--iter", "77")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "0.5") || !strings.Contains(out, "77") {
		t.Errorf("summary does not reflect overrides:\n%s", out)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"render", "-o", filepath.Join(dir, "a.png"), "--preset", "atlantis"},
		{"render", "-o", filepath.Join(dir, "b.png"), "--click", "nowhere"},
		{"render", "-o", filepath.Join(dir, "c.png"), "--width", "0"},
		{"render", "-o", filepath.Join(dir, "d.png"), "--workers", "0"},
		{"render", "-o", filepath.Join(dir, "missing", "e.png"), "--width", "4", "--height", "4"},
		{"render", "--config", filepath.Join(dir, "nope.toml")},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v succeeded, want error", args)
		}
	}
}

func TestRenderCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mandel.toml")
	cfg := "width = 10\nheight = 10\nlegacy = true\n\n[view]\ncenter_x = -0.5\nspan = 2.5\nmax_iteration = 42\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "cfg.png")
	out, err := execute(t, "render", "--config", cfgPath, "-o", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "2.5") || !strings.Contains(out, "42") {
		t.Errorf("summary does not reflect config view:\n%s", out)
	}
}
