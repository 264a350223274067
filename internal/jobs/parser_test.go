package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lsys-turtle/internal/turtle"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "words", "bush.txt"), "F[+F]\nF[-F]\n")
	xmlPath := filepath.Join(dir, "systems.xml")
	writeFile(t, xmlPath, `<?xml version="1.0"?>
<LSystems>
  <System Name="bush" Mode="3d-leaves" Angle="22.5" Step="0.5" File="words/bush.txt"/>
  <System Name="koch" Mode="2d" Angle="90" Word="F+F-F-F+F"/>
  <System Name="empty"/>
  <System Word="F"/>
</LSystems>`)

	list, err := Parse(xmlPath)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d jobs, want 3: %+v", len(list), list)
	}

	bush := list[0]
	if bush.Name != "bush" || bush.Mode != "3d-leaves" || bush.Angle != 22.5 || bush.Step != 0.5 {
		t.Errorf("bush = %+v", bush)
	}
	if want := filepath.Join(dir, "words", "bush.txt"); bush.File != want {
		t.Errorf("bush.File = %q, want %q", bush.File, want)
	}
	word, err := bush.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if word != "F[+F]F[-F]" {
		t.Errorf("bush word = %q", word)
	}

	koch := list[1]
	if koch.Source() != "inline" {
		t.Errorf("koch.Source() = %q", koch.Source())
	}
	if w, _ := koch.Load(); w != "F+F-F-F+F" {
		t.Errorf("koch word = %q", w)
	}

	if list[2].Name != "system3" || list[2].Index != 3 {
		t.Errorf("unnamed job = %+v", list[2])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `<LSystems><System`, "parse"},
		{"bad angle", `<LSystems><System Name="a" Angle="x" Word="F"/></LSystems>`, "angle"},
		{"bad step", `<LSystems><System Name="a" Step="?" Word="F"/></LSystems>`, "step"},
		{"duplicate", `<LSystems><System Name="a" Word="F"/><System Name="a" Word="F"/></LSystems>`, "duplicate"},
		{"path in name", `<LSystems><System Name="../a" Word="F"/></LSystems>`, "invalid name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "jobs.xml")
			writeFile(t, path, tt.body)
			_, err := Parse(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"bush", "koch-2", "a.b"} {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"", ".", "..", "../x", "a/b", `a\b`} {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) accepted", name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	j := Job{Name: "gone", File: filepath.Join(t.TempDir(), "nope.txt")}
	if _, err := j.Load(); err == nil {
		t.Error("expected error")
	}
}

func TestOptionsAndMode(t *testing.T) {
	defaults := turtle.Options{Angle: 25, Step: 1}

	if o := (Job{}).Options(defaults); o != defaults {
		t.Errorf("Options() = %+v, want defaults", o)
	}
	if o := (Job{Angle: 90}).Options(defaults); o.Angle != 90 || o.Step != 1 {
		t.Errorf("Options() = %+v", o)
	}

	m, err := (Job{}).ResolveMode("2d")
	if err != nil || m != turtle.Mode2D {
		t.Errorf("ResolveMode default = %v, %v", m, err)
	}
	m, err = (Job{Mode: "leaves"}).ResolveMode("2d")
	if err != nil || m != turtle.Mode3DLeaves {
		t.Errorf("ResolveMode override = %v, %v", m, err)
	}
	if _, err := (Job{Mode: "4d"}).ResolveMode(""); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFilter(t *testing.T) {
	list := []Job{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	if got := Filter(list, nil); len(got) != 3 {
		t.Errorf("Filter(nil) = %d jobs", len(got))
	}
	got := Filter(list, []string{"c", " a"})
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("Filter = %+v", got)
	}
}
