// Package turtle interprets expanded L-system words as turtle-graphics
// commands and emits line-segment geometry.
//
// 3D alphabet:
//
//	F A     draw forward one step
//	f       draw forward (leaf step of 0.8 in leaf mode)
//	+ -     turn around up
//	|       turn 180° around up
//	& ^     pitch around left
//	\ /     roll around forward
//	[ ]     push / pop position and pose
//	{ }     begin / end a leaf sequence (leaf mode only)
//
// 2D alphabet: F X draw, + - turn, [ ] push/pop. Anything else is ignored.
//
// Every call owns its own state, so interpretations may run concurrently.
package turtle

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"lsys-turtle/internal/logs"
)

// Mode selects the interpretation variant.
type Mode int

const (
	Mode3D Mode = iota
	Mode3DLeaves
	Mode2D
)

func (m Mode) String() string {
	switch m {
	case Mode3D:
		return "3d"
	case Mode3DLeaves:
		return "3d-leaves"
	case Mode2D:
		return "2d"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "3d", "3d-leaves" (or "leaves") and "2d".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "3d":
		return Mode3D, nil
	case "3d-leaves", "leaves", "leaf":
		return Mode3DLeaves, nil
	case "2d":
		return Mode2D, nil
	}
	return 0, fmt.Errorf("turtle: unknown mode %q", s)
}

// DefaultStep is the step length used when Options.Step is zero.
const DefaultStep = 1.0

// InitialHeading2D points the 2D turtle up the y axis.
const InitialHeading2D = 90.0

// Options parameterize one interpretation.
type Options struct {
	Angle float64 // turn angle in degrees
	Step  float64 // step length; 0 means DefaultStep
}

func (o Options) step() float64 {
	if o.Step == 0 {
		return DefaultStep
	}
	return o.Step
}

// Result is the full outcome of Interpret.
type Result struct {
	Mode    Mode
	Trunk   *Buffer
	Leaves  *Buffer // nil unless Mode3DLeaves
	Final   Context
	Symbols int // symbols that changed state
	Ignored int // symbols outside the alphabet
}

// Interpret runs the interpreter selected by mode.
func Interpret(word string, mode Mode, opts Options) (Result, error) {
	switch mode {
	case Mode3D, Mode3DLeaves:
		return walk3D(word, opts, mode == Mode3DLeaves)
	case Mode2D:
		return walk2D(word, opts)
	}
	return Result{}, fmt.Errorf("turtle: unsupported mode %v", mode)
}

// Interpret3D draws word in 3D; 'f' behaves like 'F'.
func Interpret3D(word string, opts Options) (*Buffer, error) {
	r, err := walk3D(word, opts, false)
	if err != nil {
		return nil, err
	}
	return r.Trunk, nil
}

// Interpret3DWithLeaves draws branches into trunk and '{f...}' leaf fans into leaves.
func Interpret3DWithLeaves(word string, opts Options) (trunk, leaves *Buffer, err error) {
	r, err := walk3D(word, opts, true)
	if err != nil {
		return nil, nil, err
	}
	return r.Trunk, r.Leaves, nil
}

// Interpret2D draws word in the xy plane starting with heading 90°.
func Interpret2D(word string, opts Options) (*Buffer, error) {
	r, err := walk2D(word, opts)
	if err != nil {
		return nil, err
	}
	return r.Trunk, nil
}

func walk3D(word string, opts Options, withLeaves bool) (Result, error) {
	step := opts.step()
	res := Result{Mode: Mode3D, Trunk: NewBuffer(strings.Count(word, "F"))}
	if withLeaves {
		res.Mode = Mode3DLeaves
		res.Leaves = NewBuffer(0)
	}

	cur := NewContext()
	var stack Stack[Context]
	var leaf LeafState

	for i := 0; i < len(word); i++ {
		c := word[i]
		forward, up, left := cur.Forward(), cur.Up(), cur.Left()

		switch c {
		case 'F', 'A':
			start, end := cur.Advance(step)
			res.Trunk.AddSegment(start, end)
		case 'f':
			if !withLeaves {
				start, end := cur.Advance(step)
				res.Trunk.AddSegment(start, end)
				break
			}
			start, end := cur.Advance(step * LeafScale)
			if leaf.Step(end) {
				res.Leaves.AddSegment(leaf.Anchor, start)
				res.Leaves.AddSegment(start, end)
			}
		case '+':
			cur.Turn(up, opts.Angle)
		case '-':
			cur.Turn(up, -opts.Angle)
		case '|':
			cur.Turn(up, 180)
		case '&':
			cur.Turn(left, opts.Angle)
		case '^':
			cur.Turn(left, -opts.Angle)
		case '\\':
			cur.Turn(forward, opts.Angle)
		case '/':
			cur.Turn(forward, -opts.Angle)
		case '[':
			stack.Push(cur)
		case ']':
			saved, err := stack.Pop()
			if err != nil {
				return Result{}, &SymbolError{Index: i, Symbol: c, Err: err}
			}
			cur = saved
		case '{':
			if !withLeaves {
				res.Ignored++
				continue
			}
			leaf.Begin(cur.Position)
		case '}':
			if !withLeaves {
				res.Ignored++
				continue
			}
			leaf.End()
		default:
			res.Ignored++
			continue
		}
		res.Symbols++
	}

	res.Final = cur
	logs.Logger().Debug("turtle: interpreted",
		"mode", res.Mode.String(),
		"symbols", len(word),
		"segments", res.Trunk.Segments(),
		"leaf_segments", res.Leaves.Segments(),
		"open_branches", stack.Len())
	return res, nil
}

// state2D is the record pushed by '[' in 2D mode.
type state2D struct {
	x, y    float64
	heading float64
}

func walk2D(word string, opts Options) (Result, error) {
	step := opts.step()
	res := Result{Mode: Mode2D, Trunk: NewBuffer(strings.Count(word, "F"))}

	cur := state2D{heading: InitialHeading2D}
	var stack Stack[state2D]

	for i := 0; i < len(word); i++ {
		c := word[i]
		switch c {
		case 'F', 'X':
			rad := cur.heading * math.Pi / 180
			start := mgl64.Vec3{cur.x, cur.y, 0}
			cur.x += step * math.Cos(rad)
			cur.y += step * math.Sin(rad)
			res.Trunk.AddSegment(start, mgl64.Vec3{cur.x, cur.y, 0})
		case '+':
			cur.heading += opts.Angle
		case '-':
			cur.heading -= opts.Angle
		case '[':
			stack.Push(cur)
		case ']':
			saved, err := stack.Pop()
			if err != nil {
				return Result{}, &SymbolError{Index: i, Symbol: c, Err: err}
			}
			cur = saved
		default:
			res.Ignored++
			continue
		}
		res.Symbols++
	}

	// Report the 2D heading as a rotation about z from the 3D forward axis.
	res.Final = Context{
		Position: mgl64.Vec3{cur.x, cur.y, 0},
		Pose:     mgl64.QuatRotate(mgl64.DegToRad(cur.heading), AxisUp),
	}
	logs.Logger().Debug("turtle: interpreted",
		"mode", res.Mode.String(),
		"symbols", len(word),
		"segments", res.Trunk.Segments(),
		"open_branches", stack.Len())
	return res, nil
}
