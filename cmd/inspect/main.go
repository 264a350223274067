package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"lsys-turtle/internal/vertexbuf"
)

func main() {
	showN := flag.Int("segments", 0, "Print the first N segments of each file")
	asJSON := flag.Bool("json", false, "Print descriptors as JSON instead of text")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-segments N] [-json] file.bin...")
		os.Exit(2)
	}

	var descs []vertexbuf.Descriptor
	failed := false
	for _, path := range flag.Args() {
		b, err := vertexbuf.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		d := vertexbuf.Describe(name, b)
		d.File = path
		if *asJSON {
			descs = append(descs, d)
			continue
		}

		fmt.Printf("%s: segments=%d, vertices=%d, bytes=%d\n", path, d.Segments, d.Vertices, d.ByteSize)
		if d.Segments == 0 {
			continue
		}
		lo, hi := d.BoundsMin, d.BoundsMax
		fmt.Printf("    BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
		fmt.Printf("    Size: %.3f x %.3f x %.3f\n", hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])

		// Length by dominant direction
		lengthByDir := map[string]float64{}
		total, degenerate := 0.0, 0
		for i := 0; i < b.Segments(); i++ {
			s, e := b.Segment(i)
			d := mgl64.Vec3{float64(e[0] - s[0]), float64(e[1] - s[1]), float64(e[2] - s[2])}
			l := d.Len()
			if l == 0 {
				degenerate++
				continue
			}
			total += l
			lengthByDir[dominant(d)] += l
		}
		fmt.Printf("    Total length: %.3f (%d zero-length)\n", total, degenerate)
		for _, dir := range []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"} {
			if lengthByDir[dir] > 0 {
				fmt.Printf("    %s: %.3f\n", dir, lengthByDir[dir])
			}
		}

		n := min(*showN, b.Segments())
		for i := 0; i < n; i++ {
			s, e := b.Segment(i)
			fmt.Printf("    seg[%3d] (%.3f, %.3f, %.3f) -> (%.3f, %.3f, %.3f)\n",
				i, s[0], s[1], s[2], e[0], e[1], e[2])
		}
	}

	if *asJSON {
		data, err := json.MarshalIndent(descs, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	}
	if failed {
		os.Exit(1)
	}
}

func dominant(d mgl64.Vec3) string {
	dx, dy, dz := d[0], d[1], d[2]
	ax, ay, az := math.Abs(dx), math.Abs(dy), math.Abs(dz)
	switch {
	case ax >= ay && ax >= az:
		if dx > 0 {
			return "+X"
		}
		return "-X"
	case ay >= az:
		if dy > 0 {
			return "+Y"
		}
		return "-Y"
	}
	if dz > 0 {
		return "+Z"
	}
	return "-Z"
}
