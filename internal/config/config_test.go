package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"mode": "3d-leaves",
		"angle": 22.5,
		"output_dir": "renders",
		"camera": {"preset": "iso", "perspective": true, "fov": 50},
		"trunk_color": "#112233"
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "3d-leaves" || cfg.Angle != 22.5 || cfg.OutputDir != "renders" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Camera.Preset != "iso" || !cfg.Camera.Perspective || cfg.Camera.FOV != 50 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolve_Defaults(t *testing.T) {
	cfg := Config{BaseDir: "/work"}
	cfg.Resolve(Flags{})

	if cfg.Mode != "3d" || cfg.Angle != 25 || cfg.Step != 1 {
		t.Errorf("interpretation defaults = %q %v %v", cfg.Mode, cfg.Angle, cfg.Step)
	}
	if cfg.OutputDir != filepath.Join("/work", "out") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Format != "webp" || cfg.RenderSize != 512 || cfg.Supersample != 2 {
		t.Errorf("preview defaults = %q %d %d", cfg.Format, cfg.RenderSize, cfg.Supersample)
	}
	if cfg.Camera.Preset != "tree" {
		t.Errorf("3d camera preset = %q, want tree", cfg.Camera.Preset)
	}
	if cfg.Workers <= 0 || cfg.LogLevel != "info" {
		t.Errorf("Workers = %d, LogLevel = %q", cfg.Workers, cfg.LogLevel)
	}
}

func TestResolve_2DUsesFrontCamera(t *testing.T) {
	cfg := Config{BaseDir: "/work", Mode: "2d"}
	cfg.Resolve(Flags{})
	if cfg.Camera.Preset != "front" {
		t.Errorf("2d camera preset = %q, want front", cfg.Camera.Preset)
	}
}

func TestResolve_KeepsExplicitEulerCamera(t *testing.T) {
	cfg := Config{BaseDir: "/work"}
	cfg.Camera.Yaw = 45
	cfg.Resolve(Flags{})
	if cfg.Camera.Preset != "" {
		t.Errorf("preset = %q, want empty when angles are set", cfg.Camera.Preset)
	}
}

func TestResolve_FlagsOverride(t *testing.T) {
	cfg := Config{BaseDir: "/work", Mode: "2d", Angle: 60, OutputDir: "abs"}
	cfg.Resolve(Flags{
		Mode:        "3d-leaves",
		Angle:       18,
		Step:        0.5,
		OutputDir:   "/tmp/o",
		JobsXML:     "jobs.xml",
		Format:      "png",
		Size:        128,
		Camera:      "side",
		Perspective: true,
		Workers:     3,
		LogLevel:    "debug",
		NoPreview:   true,
	})
	if cfg.Mode != "3d-leaves" || cfg.Angle != 18 || cfg.Step != 0.5 {
		t.Errorf("interpretation = %q %v %v", cfg.Mode, cfg.Angle, cfg.Step)
	}
	if cfg.OutputDir != "/tmp/o" || cfg.JobsXML != filepath.Join("/work", "jobs.xml") {
		t.Errorf("paths = %q %q", cfg.OutputDir, cfg.JobsXML)
	}
	if cfg.Format != "png" || cfg.RenderSize != 128 || !cfg.NoPreview {
		t.Errorf("preview = %q %d %v", cfg.Format, cfg.RenderSize, cfg.NoPreview)
	}
	if cfg.Camera.Preset != "side" || !cfg.Camera.Perspective {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Workers != 3 || cfg.LogLevel != "debug" {
		t.Errorf("Workers = %d, LogLevel = %q", cfg.Workers, cfg.LogLevel)
	}
	if o := cfg.Options(); o.Angle != 18 || o.Step != 0.5 {
		t.Errorf("Options() = %+v", o)
	}
}

func TestStyle(t *testing.T) {
	cfg := Config{BaseDir: "/work", Background: "#ffffff", LeafColor: "#00ff0080", NoDepthCue: true}
	cfg.Resolve(Flags{})
	st, err := cfg.Style()
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if st.Background != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Background = %v", st.Background)
	}
	if st.Leaf.Color != (color.NRGBA{G: 255, A: 0x80}) {
		t.Errorf("Leaf.Color = %v", st.Leaf.Color)
	}
	if st.DepthCue {
		t.Error("DepthCue should be off")
	}
	if st.Trunk.Width != 1.5 || st.Leaf.Width != 1 {
		t.Errorf("widths = %v %v", st.Trunk.Width, st.Leaf.Width)
	}

	cfg.TrunkColor = "brown"
	if _, err := cfg.Style(); err == nil {
		t.Error("expected error for bad trunk color")
	}
}
