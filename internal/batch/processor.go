package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"lsys-turtle/internal/jobs"
	"lsys-turtle/internal/logs"
	"lsys-turtle/internal/preview"
	"lsys-turtle/internal/turtle"
	"lsys-turtle/internal/vertexbuf"
	"lsys-turtle/internal/viewmatrix"
)

// Config holds all shared settings for a batch run. Workers only read it.
type Config struct {
	OutputDir   string
	Mode        string         // default mode for jobs that set none
	Defaults    turtle.Options // default angle and step
	Preview     bool
	Format      string
	Camera      viewmatrix.Camera
	Style       preview.Style
	RenderSize  int
	Supersample int
	Workers     int
}

// Result holds the outcome of processing one job.
type Result struct {
	Name     string
	Mode     string
	Angle    float64
	Step     float64
	Success  bool
	Error    string
	Symbols  int
	Ignored  int
	Geometry []vertexbuf.Descriptor
	Preview  string // path relative to OutputDir
	Elapsed  time.Duration
}

// Output file names inside each job directory.
const (
	TrunkFile      = "trunk.bin"
	LeavesFile     = "leaves.bin"
	DescriptorFile = "geometry.json"
)

// Run processes all jobs using a worker pool. Results are in job order.
func Run(cfg Config, list []jobs.Job) []Result {
	total := len(list)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f systems/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, list[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range list {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

type stream struct {
	name, file string
	buf        *turtle.Buffer
}

func processJob(cfg Config, job jobs.Job) Result {
	t0 := time.Now()
	opts := job.Options(cfg.Defaults)
	res := Result{Name: job.Name, Mode: job.Mode, Angle: opts.Angle, Step: opts.Step}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Elapsed = time.Since(t0)
		logs.Logger().Warn("batch: job failed", "name", job.Name, "err", err)
		return res
	}

	mode, err := job.ResolveMode(cfg.Mode)
	if err != nil {
		return fail(err)
	}
	res.Mode = mode.String()

	word, err := job.Load()
	if err != nil {
		return fail(err)
	}

	out, err := turtle.Interpret(word, mode, opts)
	if err != nil {
		return fail(err)
	}
	res.Symbols = out.Symbols
	res.Ignored = out.Ignored

	res.Geometry, res.Preview, err = Emit(cfg, job.Name, out)
	if err != nil {
		return fail(err)
	}

	res.Success = true
	res.Elapsed = time.Since(t0)
	logs.Logger().Debug("batch: job done",
		"name", job.Name,
		"mode", res.Mode,
		"segments", out.Trunk.Segments()+out.Leaves.Segments(),
		"elapsed", res.Elapsed)
	return res
}

// Emit writes the vertex files, descriptor and optional preview of one
// interpretation under OutputDir/name. It returns the descriptors and the
// preview path relative to OutputDir.
func Emit(cfg Config, name string, out turtle.Result) ([]vertexbuf.Descriptor, string, error) {
	if err := jobs.ValidateName(name); err != nil {
		return nil, "", fmt.Errorf("batch: %w", err)
	}
	dir := filepath.Join(cfg.OutputDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", err
	}

	streams := []stream{{"trunk", TrunkFile, out.Trunk}}
	if out.Leaves != nil {
		streams = append(streams, stream{"leaves", LeavesFile, out.Leaves})
	}
	var geometry []vertexbuf.Descriptor
	for _, s := range streams {
		if err := vertexbuf.WriteFile(filepath.Join(dir, s.file), s.buf); err != nil {
			return nil, "", err
		}
		d := vertexbuf.Describe(s.name, s.buf)
		d.File = s.file
		geometry = append(geometry, d)
	}
	if err := vertexbuf.WriteDescriptors(filepath.Join(dir, DescriptorFile), geometry); err != nil {
		return nil, "", err
	}

	if !cfg.Preview {
		return geometry, "", nil
	}
	cam := cfg.Camera
	if out.Mode == turtle.Mode2D {
		// Flat drawings always face the viewer.
		cam = viewmatrix.Camera{Preset: "front"}
	}
	rel := filepath.Join(name, "preview"+preview.Ext(cfg.Format))
	err := preview.Save(filepath.Join(cfg.OutputDir, rel), out.Trunk, out.Leaves,
		cam, cfg.Style, cfg.RenderSize, cfg.Supersample)
	if err != nil {
		return nil, "", err
	}
	return geometry, filepath.ToSlash(rel), nil
}
