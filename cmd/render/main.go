package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lsys-turtle/internal/batch"
	"lsys-turtle/internal/config"
	"lsys-turtle/internal/jobs"
	"lsys-turtle/internal/logs"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	jobsXML := flag.String("jobs", "", "Path to the L-system jobs XML file")
	only := flag.String("only", "", "Comma-separated system names to render")
	testN := flag.Int("test", 0, "Render only first N systems for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: ./out)")
	mode := flag.String("mode", "", "Default mode: 3d, 3d-leaves or 2d (default: 3d)")
	angle := flag.Float64("angle", 0, "Default turn angle in degrees (default: 25)")
	step := flag.Float64("step", 0, "Default step length (default: 1)")
	format := flag.String("format", "", "Preview format: webp, png, tga, bmp (default: webp)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 512)")
	camera := flag.String("camera", "", "Camera preset: front, tree, side, iso")
	perspective := flag.Bool("perspective", false, "Use a perspective camera")
	noPreview := flag.Bool("no-preview", false, "Write vertex files only")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Mode:        *mode,
		Angle:       *angle,
		Step:        *step,
		JobsXML:     *jobsXML,
		OutputDir:   *outputDir,
		Format:      *format,
		Size:        *size,
		Camera:      *camera,
		Workers:     *workers,
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

	if cfg.JobsXML == "" {
		fmt.Fprintln(os.Stderr, "Error: no jobs file. Use -jobs flag or jobs_xml in config.json.")
		os.Exit(1)
	}

	style, err := cfg.Style()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Load job list
	list, err := jobs.Parse(cfg.JobsXML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading jobs: %v\n", err)
		os.Exit(1)
	}

	if *only != "" {
		list = jobs.Filter(list, strings.Split(*only, ","))
	}

	// Limit for testing
	if *testN > 0 && *testN < len(list) {
		list = list[:*testN]
	}

	if len(list) == 0 {
		fmt.Println("No systems to render.")
		os.Exit(0)
	}

	// Print summary
	suffix := ""
	if *testN > 0 {
		suffix = fmt.Sprintf(" (TEST: first %d)", *testN)
	}
	preview := cfg.Format
	if cfg.NoPreview {
		preview = "off"
	}

	fmt.Printf("L-system turtle renderer%s\n", suffix)
	fmt.Printf("Systems: %d, Workers: %d, Preview: %s\n", len(list), cfg.Workers, preview)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Mode:        cfg.Mode,
		Defaults:    cfg.Options(),
		Preview:     !cfg.NoPreview,
		Format:      cfg.Format,
		Camera:      cfg.Camera,
		Style:       style,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg, list)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(list))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, list, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		closeLog()
		os.Exit(1)
	}
}
