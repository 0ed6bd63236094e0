package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/scene"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, opts options)
		wantErr bool
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, opts options) {
				if opts.Scene != "final" || opts.Width != scene.DefaultWidth || opts.Passes != 1 {
					t.Errorf("Unexpected defaults %+v", opts)
				}
				if opts.Out != filepath.Join("output", "final.ppm") {
					t.Errorf("Unexpected default output %q", opts.Out)
				}
			},
		},
		{
			name: "output follows scene",
			args: []string{"-scene", "glass"},
			check: func(t *testing.T, opts options) {
				if opts.Out != filepath.Join("output", "glass.ppm") {
					t.Errorf("Unexpected output %q", opts.Out)
				}
			},
		},
		{
			name: "explicit values",
			args: []string{"-scene", "metal", "-width", "80", "-samples", "4", "-depth", "3",
				"-passes", "2", "-workers", "3", "-seed", "9", "-out", "x.png", "-thumbnail", "32", "-upload"},
			check: func(t *testing.T, opts options) {
				expected := options{Scene: "metal", Width: 80, Samples: 4, Depth: 3, Passes: 2, Workers: 3,
					Seed: 9, Out: "x.png", Thumbnail: 32, Upload: true, EnvFile: ".env"}
				if opts != expected {
					t.Errorf("Expected %+v, got %+v", expected, opts)
				}
			},
		},
		{name: "zero passes", args: []string{"-passes", "0"}, wantErr: true},
		{name: "unknown flag", args: []string{"-bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, &bytes.Buffer{})
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestPrintHelpListsScenes(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf)

	text := buf.String()
	names := []string{firstPPMScene}
	for _, info := range scene.ListScenes() {
		names = append(names, info.ID)
	}
	for _, name := range names {
		if !strings.Contains(text, name) {
			t.Errorf("Help output is missing scene %q", name)
		}
	}
}

func TestRun_FirstPPM(t *testing.T) {
	out := filepath.Join(t.TempDir(), "first.ppm")
	opts := options{Scene: firstPPMScene, Passes: 1, Out: out}

	if err := run(context.Background(), opts, core.NopLogger{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "P3\n256 256\n255\n") {
		t.Errorf("Unexpected header %q", string(data[:20]))
	}
}

func TestRun_UnknownScene(t *testing.T) {
	opts := options{Scene: "nonexistent", Passes: 1, Out: filepath.Join(t.TempDir(), "x.ppm")}

	err := run(context.Background(), opts, core.NopLogger{})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestRender_SingleAndProgressiveAgreeOnSize(t *testing.T) {
	base := options{Scene: "diffuse", Width: 32, Samples: 2, Depth: 4, Seed: 1}

	single := base
	single.Passes = 1
	img, err := render(context.Background(), single, core.NopLogger{})
	if err != nil {
		t.Fatalf("single pass render: %v", err)
	}

	progressive := base
	progressive.Passes = 2
	progressive.Workers = 2
	progImg, err := render(context.Background(), progressive, core.NopLogger{})
	if err != nil {
		t.Fatalf("progressive render: %v", err)
	}

	if img.Bounds() != progImg.Bounds() {
		t.Errorf("Bounds differ: %v vs %v", img.Bounds(), progImg.Bounds())
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 18 {
		t.Errorf("Expected 32x18 image, got %v", img.Bounds())
	}
}

func TestRun_WritesThumbnail(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gradient.png")
	opts := options{Scene: "gradient", Width: 64, Samples: 1, Passes: 1, Out: out, Thumbnail: 16}

	if err := run(context.Background(), opts, core.NopLogger{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, path := range []string{out, strings.TrimSuffix(out, ".png") + "_thumb.png"} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
}

func TestRun_UploadWithoutBucket(t *testing.T) {
	t.Setenv("RT_S3_BUCKET", "")
	opts := options{
		Scene:   firstPPMScene,
		Passes:  1,
		Out:     filepath.Join(t.TempDir(), "first.ppm"),
		Upload:  true,
		EnvFile: filepath.Join(t.TempDir(), "missing.env"),
	}

	if err := run(context.Background(), opts, core.NopLogger{}); err == nil {
		t.Error("Expected upload configuration error")
	}
}
