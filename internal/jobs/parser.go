package jobs

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// xmlJobList matches the jobs XML schema:
//
//	<LSystems>
//	  <System Name="bush" Mode="3d-leaves" Angle="22.5" File="bush.txt"/>
//	  <System Name="koch" Mode="2d" Angle="90" Word="F+F-F-F+F"/>
//	</LSystems>
type xmlJobList struct {
	Systems []xmlSystem `xml:"System"`
}

type xmlSystem struct {
	Name  string `xml:"Name,attr"`
	Mode  string `xml:"Mode,attr"`
	Angle string `xml:"Angle,attr"`
	Step  string `xml:"Step,attr"`
	File  string `xml:"File,attr"`
	Word  string `xml:"Word,attr"`
}

// Parse reads a jobs XML file. Entries without symbols are skipped;
// relative File paths are resolved against the XML file's directory.
func Parse(xmlPath string) ([]Job, error) {
	raw, err := os.ReadFile(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("jobs: read %s: %w", xmlPath, err)
	}

	var list xmlJobList
	if err := xml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("jobs: parse %s: %w", xmlPath, err)
	}

	baseDir := filepath.Dir(xmlPath)
	seen := make(map[string]bool)
	var out []Job
	for i, sys := range list.Systems {
		if sys.File == "" && strings.TrimSpace(sys.Word) == "" {
			continue
		}
		name := strings.TrimSpace(sys.Name)
		if name == "" {
			name = fmt.Sprintf("system%d", i)
		}
		if err := ValidateName(name); err != nil {
			return nil, fmt.Errorf("jobs: %s: %w", xmlPath, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("jobs: %s: duplicate name %q", xmlPath, name)
		}
		seen[name] = true

		job := Job{
			Index: i,
			Name:  name,
			Mode:  strings.TrimSpace(sys.Mode),
			Word:  sys.Word,
		}
		if job.Angle, err = parseFloat(sys.Angle); err != nil {
			return nil, fmt.Errorf("jobs: %s: %s: angle: %w", xmlPath, name, err)
		}
		if job.Step, err = parseFloat(sys.Step); err != nil {
			return nil, fmt.Errorf("jobs: %s: %s: step: %w", xmlPath, name, err)
		}
		if sys.File != "" {
			job.File = sys.File
			if !filepath.IsAbs(job.File) {
				job.File = filepath.Join(baseDir, job.File)
			}
		}
		out = append(out, job)
	}

	return out, nil
}

// Filter keeps jobs whose names are in names. An empty list keeps everything.
func Filter(list []Job, names []string) []Job {
	if len(names) == 0 {
		return list
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}
	var out []Job
	for _, j := range list {
		if want[j.Name] {
			out = append(out, j)
		}
	}
	return out
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ValidateName rejects names that would escape the output directory.
// Names become output directories.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}
