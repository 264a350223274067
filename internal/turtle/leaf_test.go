package turtle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLeafState_Transitions(t *testing.T) {
	var l LeafState
	if l.Phase != LeafInactive {
		t.Fatalf("zero phase = %v, want inactive", l.Phase)
	}
	if l.Step(mgl64.Vec3{1, 0, 0}) {
		t.Error("inactive step should not emit")
	}
	if l.Phase != LeafInactive {
		t.Errorf("inactive step changed phase to %v", l.Phase)
	}

	anchor := mgl64.Vec3{1, 2, 3}
	l.Begin(anchor)
	if l.Phase != LeafFirstPending || l.Anchor != anchor {
		t.Fatalf("after Begin: %+v", l)
	}
	if l.Step(mgl64.Vec3{2, 2, 3}) {
		t.Error("first step after Begin should not emit")
	}
	if l.Phase != LeafActive {
		t.Fatalf("phase = %v, want active", l.Phase)
	}
	if !l.Step(mgl64.Vec3{3, 2, 3}) {
		t.Error("active step should emit")
	}
	if l.Step(anchor) {
		t.Error("step ending on the anchor should be suppressed")
	}
	if !l.Step(mgl64.Vec3{1, 2, 3 + 1e-12}) {
		t.Error("step ending near (not on) the anchor should emit")
	}

	l.End()
	if l.Phase != LeafInactive {
		t.Errorf("after End phase = %v", l.Phase)
	}
}

func TestLeafPhase_String(t *testing.T) {
	for p, want := range map[LeafPhase]string{
		LeafInactive:     "inactive",
		LeafFirstPending: "first-pending",
		LeafActive:       "active",
		LeafPhase(9):     "unknown",
	} {
		if got := p.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(p), got, want)
		}
	}
}

func TestInterpret3DWithLeaves_Fan(t *testing.T) {
	trunk, leaves, err := Interpret3DWithLeaves("F{ff}", Options{Angle: 45})
	if err != nil {
		t.Fatalf("Interpret3DWithLeaves: %v", err)
	}
	checkSegments(t, trunk, []seg{{[3]float32{0, 0, 0}, [3]float32{1, 0, 0}}})
	// First f only advances; second fans from the '{' anchor.
	checkSegments(t, leaves, []seg{
		{[3]float32{1, 0, 0}, [3]float32{1.8, 0, 0}},
		{[3]float32{1.8, 0, 0}, [3]float32{2.6, 0, 0}},
	})
}

func TestInterpret3DWithLeaves_BranchSymbolsUseTrunk(t *testing.T) {
	trunk, leaves, err := Interpret3DWithLeaves("FA[+F]", Options{Angle: 90, Step: 2})
	if err != nil {
		t.Fatal(err)
	}
	if trunk.Segments() != 3 {
		t.Errorf("trunk segments = %d, want 3", trunk.Segments())
	}
	if leaves.Segments() != 0 {
		t.Errorf("leaf segments = %d, want 0", leaves.Segments())
	}
}

func TestInterpret3DWithLeaves_LeafStepScale(t *testing.T) {
	r, err := Interpret("{fff}", Mode3DLeaves, Options{Angle: 10, Step: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := 3 * 2 * LeafScale
	if got := r.Final.Position[0]; got < want-eps || got > want+eps {
		t.Errorf("final x = %v, want %v", got, want)
	}
	// Two emitting steps, two segments each.
	if r.Leaves.Segments() != 4 {
		t.Errorf("leaf segments = %d, want 4", r.Leaves.Segments())
	}
	if r.Trunk.Segments() != 0 {
		t.Errorf("trunk segments = %d, want 0", r.Trunk.Segments())
	}
}

// Leaves exist only inside '{...}'. A step outside a sequence moves the
// turtle but never fans from the anchor of a closed sequence or from the
// origin, even after several stray steps.
func TestInterpret3DWithLeaves_StrayLeafStepsDoNotEmit(t *testing.T) {
	r, err := Interpret("fff{f}ff", Mode3DLeaves, Options{Angle: 30})
	if err != nil {
		t.Fatal(err)
	}
	if r.Leaves.Segments() != 0 {
		t.Errorf("leaf segments = %d, want 0", r.Leaves.Segments())
	}
	if want := 6 * LeafScale; math.Abs(r.Final.Position[0]-want) > 1e-9 {
		t.Errorf("final x = %v, want %v", r.Final.Position[0], want)
	}
}

func TestInterpret3DWithLeaves_RestartAnchor(t *testing.T) {
	_, leaves, err := Interpret3DWithLeaves("{ff{ff}", Options{Angle: 30})
	if err != nil {
		t.Fatal(err)
	}
	checkSegments(t, leaves, []seg{
		{[3]float32{0, 0, 0}, [3]float32{0.8, 0, 0}},
		{[3]float32{0.8, 0, 0}, [3]float32{1.6, 0, 0}},
		{[3]float32{1.6, 0, 0}, [3]float32{2.4, 0, 0}},
		{[3]float32{2.4, 0, 0}, [3]float32{3.2, 0, 0}},
	})
}

// Numerical drift after a 180° turn leaves the endpoint a hair off the
// anchor, so an edge is still emitted.
func TestInterpret3DWithLeaves_NearZeroDriftStillEmits(t *testing.T) {
	_, leaves, err := Interpret3DWithLeaves("{f|f}", Options{Angle: 30})
	if err != nil {
		t.Fatal(err)
	}
	if leaves.Segments() != 2 {
		t.Errorf("leaf segments = %d, want 2", leaves.Segments())
	}
}

// Leaf state is not part of the branch context: a ']' leaves the leaf
// sequence and its anchor as they were inside the branch.
func TestInterpret3DWithLeaves_LeafStateSurvivesBranchPop(t *testing.T) {
	// '{' anchors at x=0.8 inside the branch; after ']' the turtle is back
	// at the origin, and the next f ends exactly on that anchor.
	_, leaves, err := Interpret3DWithLeaves("[f{f]f", Options{Angle: 30})
	if err != nil {
		t.Fatal(err)
	}
	if leaves.Segments() != 0 {
		t.Errorf("edge ending on the anchor emitted %d segments", leaves.Segments())
	}

	_, leaves, err = Interpret3DWithLeaves("[f{f]ff", Options{Angle: 30})
	if err != nil {
		t.Fatal(err)
	}
	checkSegments(t, leaves, []seg{
		{[3]float32{0.8, 0, 0}, [3]float32{0.8, 0, 0}},
		{[3]float32{0.8, 0, 0}, [3]float32{1.6, 0, 0}},
	})
}

func TestInterpret3DWithLeaves_StackUnderflow(t *testing.T) {
	trunk, leaves, err := Interpret3DWithLeaves("F{ff}]", Options{Angle: 30})
	if err == nil {
		t.Fatal("expected underflow error")
	}
	if trunk != nil || leaves != nil {
		t.Error("expected no geometry on underflow")
	}
}
