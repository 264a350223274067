package turtle

import "github.com/go-gl/mathgl/mgl64"

// LeafPhase is the state of the leaf sub-machine in leaf mode.
type LeafPhase int

const (
	LeafInactive LeafPhase = iota
	// LeafFirstPending: '{' seen, the next 'f' only moves the turtle.
	LeafFirstPending
	LeafActive
)

func (p LeafPhase) String() string {
	switch p {
	case LeafInactive:
		return "inactive"
	case LeafFirstPending:
		return "first-pending"
	case LeafActive:
		return "active"
	}
	return "unknown"
}

// LeafScale shortens leaf steps relative to branch steps.
const LeafScale = 0.8

// LeafState tracks the current leaf sequence. It is not part of Context and
// is therefore not saved by '[' or restored by ']'.
type LeafState struct {
	Phase  LeafPhase
	Anchor mgl64.Vec3
}

// Begin starts a leaf sequence anchored at pos.
func (l *LeafState) Begin(pos mgl64.Vec3) {
	l.Anchor = pos
	l.Phase = LeafFirstPending
}

// End closes the current leaf sequence.
func (l *LeafState) End() {
	l.Phase = LeafInactive
}

// Step records one leaf edge ending at end and reports whether its fan
// (anchor->start, start->end) should be emitted. The first edge after Begin
// and edges ending exactly on the anchor are suppressed. Outside a leaf
// sequence nothing is emitted.
func (l *LeafState) Step(end mgl64.Vec3) bool {
	switch l.Phase {
	case LeafFirstPending:
		l.Phase = LeafActive
		return false
	case LeafActive:
		return end != l.Anchor
	}
	return false
}
