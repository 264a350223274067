package turtle

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrStackUnderflow is returned when ']' closes a branch that was never opened.
var ErrStackUnderflow = errors.New("branch stack underflow")

// SymbolError reports the symbol at which interpretation failed.
type SymbolError struct {
	Index  int
	Symbol byte
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("turtle: symbol %q at %d: %v", e.Symbol, e.Index, e.Err)
}

func (e *SymbolError) Unwrap() error { return e.Err }

// Canonical axes of the identity pose.
var (
	AxisForward = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 0, 1}
	AxisLeft    = mgl64.Vec3{0, 1, 0}
)

// Context is the turtle's position and orientation. Saved and restored as a unit.
type Context struct {
	Position mgl64.Vec3
	Pose     mgl64.Quat
}

// NewContext returns a turtle at the origin with identity orientation.
func NewContext() Context {
	return Context{Pose: mgl64.QuatIdent()}
}

// Forward, Up and Left return the current basis vectors in world space.
func (c Context) Forward() mgl64.Vec3 { return c.Pose.Rotate(AxisForward) }
func (c Context) Up() mgl64.Vec3      { return c.Pose.Rotate(AxisUp) }
func (c Context) Left() mgl64.Vec3    { return c.Pose.Rotate(AxisLeft) }

// Turn rotates the pose by deg degrees around a world-space axis.
// The rotation is applied before the existing pose, so repeated turns
// accumulate in the turtle's local frame.
func (c *Context) Turn(axis mgl64.Vec3, deg float64) {
	r := mgl64.QuatRotate(mgl64.DegToRad(deg), axis.Normalize())
	c.Pose = r.Mul(c.Pose).Normalize()
}

// Advance moves the position along the forward axis and returns the
// previous and new positions.
func (c *Context) Advance(dist float64) (start, end mgl64.Vec3) {
	start = c.Position
	end = start.Add(c.Forward().Mul(dist))
	c.Position = end
	return start, end
}

// Stack is a LIFO of saved turtle states.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes the top entry. It returns ErrStackUnderflow when empty.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrStackUnderflow
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

func (s *Stack[T]) Len() int { return len(s.items) }
