package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"lsys-turtle/internal/batch"
	"lsys-turtle/internal/config"
	"lsys-turtle/internal/jobs"
	"lsys-turtle/internal/logs"
	"lsys-turtle/internal/turtle"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	word := flag.String("word", "", "Expanded L-system word to interpret")
	input := flag.String("input", "", "Read the word from this file ('-' for stdin)")
	name := flag.String("name", "turtle", "Output subdirectory name")
	mode := flag.String("mode", "", "Mode: 3d, 3d-leaves or 2d (default: 3d)")
	angle := flag.Float64("angle", 0, "Turn angle in degrees (default: 25)")
	step := flag.Float64("step", 0, "Step length (default: 1)")
	outputDir := flag.String("output", "", "Output directory (default: ./out)")
	format := flag.String("format", "", "Preview format: webp, png, tga, bmp (default: webp)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 512)")
	camera := flag.String("camera", "", "Camera preset: front, tree, side, iso")
	perspective := flag.Bool("perspective", false, "Use a perspective camera")
	noPreview := flag.Bool("no-preview", false, "Write vertex files only")
	dump := flag.Bool("dump", false, "Print every segment and write nothing")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Mode:        *mode,
		Angle:       *angle,
		Step:        *step,
		OutputDir:   *outputDir,
		Format:      *format,
		Size:        *size,
		Camera:      *camera,
		LogLevel:    *logLevel,
		NoPreview:   *noPreview,
		Perspective: *perspective,
	})

	level, err := logs.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_, closeLog, err := logs.Setup(logs.Options{Level: level, LogFile: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := jobs.ValidateName(*name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -name: %v\n", err)
		os.Exit(1)
	}

	job := jobs.Job{Name: *name, Mode: cfg.Mode, Word: *word}
	switch {
	case *input == "-" || (*input == "" && *word == ""):
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		job.Word = string(raw)
	case *input != "":
		job.File = *input
	}

	w, err := job.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := job.ResolveMode("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := turtle.Interpret(w, m, cfg.Options())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var se *turtle.SymbolError
		if errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, excerpt(w, se.Index))
		}
		os.Exit(1)
	}

	fmt.Printf("Mode: %s, Angle: %g, Step: %g\n", res.Mode, cfg.Angle, cfg.Step)
	fmt.Printf("Symbols: %d (%d ignored)\n", len(w), res.Ignored)
	fmt.Printf("Trunk: %d segments\n", res.Trunk.Segments())
	if res.Leaves != nil {
		fmt.Printf("Leaves: %d segments\n", res.Leaves.Segments())
	}
	p := res.Final.Position
	fmt.Printf("Final position: (%.4f, %.4f, %.4f)\n", p[0], p[1], p[2])

	if *dump {
		printSegments("trunk", res.Trunk)
		printSegments("leaves", res.Leaves)
		return
	}

	style, err := cfg.Style()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	geometry, preview, err := batch.Emit(batch.Config{
		OutputDir:   cfg.OutputDir,
		Preview:     !cfg.NoPreview,
		Format:      cfg.Format,
		Camera:      cfg.Camera,
		Style:       style,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
	}, job.Name, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, d := range geometry {
		fmt.Printf("Wrote %s/%s (%d bytes)\n", job.Name, d.File, d.ByteSize)
	}
	if preview != "" {
		fmt.Printf("Preview: %s\n", preview)
	}
}

func printSegments(label string, b *turtle.Buffer) {
	for i := 0; i < b.Segments(); i++ {
		s, e := b.Segment(i)
		fmt.Printf("%s[%d] %g %g %g  %g %g %g\n", label, i, s[0], s[1], s[2], e[0], e[1], e[2])
	}
}

// excerpt shows up to 20 symbols either side of idx with a caret under it.
func excerpt(w string, idx int) string {
	lo := max(idx-20, 0)
	hi := min(idx+21, len(w))
	return fmt.Sprintf("  %s\n  %s^", w[lo:hi], strings.Repeat(" ", idx-lo))
}
