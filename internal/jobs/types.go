package jobs

import (
	"fmt"
	"os"
	"strings"

	"lsys-turtle/internal/turtle"
)

// Job holds one L-system entry parsed from a jobs XML file.
type Job struct {
	Index int // position in the file
	Name  string
	Mode  string  // empty means the run default
	Angle float64 // 0 means the run default
	Step  float64 // 0 means the run default
	File  string  // absolute path to a symbol file, or empty
	Word  string  // inline symbols, used when File is empty
}

// Source names where the symbols come from.
func (j Job) Source() string {
	if j.File != "" {
		return j.File
	}
	return "inline"
}

// Load returns the job's expanded word. Symbol files may span several
// lines; all whitespace is dropped.
func (j Job) Load() (string, error) {
	if j.File == "" {
		return stripSpace(j.Word), nil
	}
	raw, err := os.ReadFile(j.File)
	if err != nil {
		return "", fmt.Errorf("jobs: %s: %w", j.Name, err)
	}
	return stripSpace(string(raw)), nil
}

// Options merges the job's angle and step over defaults.
func (j Job) Options(defaults turtle.Options) turtle.Options {
	o := defaults
	if j.Angle != 0 {
		o.Angle = j.Angle
	}
	if j.Step != 0 {
		o.Step = j.Step
	}
	return o
}

// ResolveMode parses the job's mode, falling back to def.
func (j Job) ResolveMode(def string) (turtle.Mode, error) {
	s := j.Mode
	if s == "" {
		s = def
	}
	return turtle.ParseMode(s)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
