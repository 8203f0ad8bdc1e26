package graphics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformDirtyFlag(t *testing.T) {
	tr := NewTransform()
	if !tr.Dirty() {
		t.Fatalf("new transform should start dirty")
	}
	tr.Matrix()
	tr.Inverse()
	tr.Matrix()
	if tr.recomputes != 1 {
		t.Fatalf("recomputes = %d, want 1 (both matrices built together)", tr.recomputes)
	}

	mutators := map[string]func(){
		"SetPosition": func() { tr.SetPosition(mgl32.Vec3{1, 2, 3}) },
		"SetRotation": func() { tr.SetRotation(mgl32.Vec3{0, 0, 1}) },
		"SetScale":    func() { tr.SetScale(mgl32.Vec3{2, 2, 2}) },
		"Translate":   func() { tr.Translate(mgl32.Vec3{1, 0, 0}) },
		"Rotate":      func() { tr.Rotate(mgl32.Vec3{0, 0, 0.5}) },
		"ScaleBy":     func() { tr.ScaleBy(mgl32.Vec3{1, 2, 1}) },
	}
	for name, mutate := range mutators {
		before := tr.recomputes
		mutate()
		if !tr.Dirty() {
			t.Errorf("%s did not mark the transform dirty", name)
		}
		tr.Inverse()
		tr.Matrix()
		if tr.recomputes != before+1 {
			t.Errorf("%s: recomputes went %d -> %d, want one", name, before, tr.recomputes)
		}
	}
}

func TestTransformDeltasAccumulate(t *testing.T) {
	tr := NewTransform()
	tr.ScaleBy(mgl32.Vec3{1, 1, 1})
	if tr.Scale() != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("unit scale + (1,1,1) = %v, want (2,2,2)", tr.Scale())
	}
	tr.ScaleBy(mgl32.Vec3{-0.5, 0, 1})
	if tr.Scale() != (mgl32.Vec3{1.5, 2, 3}) {
		t.Errorf("scale = %v, want (1.5,2,3)", tr.Scale())
	}

	tr.Translate(mgl32.Vec3{1, 0, 0})
	tr.Translate(mgl32.Vec3{0, 2, 0})
	if tr.Position() != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("position = %v", tr.Position())
	}
}

func TestTransformComposition(t *testing.T) {
	tr := NewTransform()
	tr.SetPosition(mgl32.Vec3{3, -2, 0})
	tr.SetRotation(mgl32.Vec3{0, 0, mgl32.DegToRad(90)})
	tr.SetScale(mgl32.Vec3{2, 1, 1})

	want := mgl32.Translate3D(3, -2, 0).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 1, 1))
	if !tr.Matrix().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Matrix =\n%v\nwant\n%v", tr.Matrix(), want)
	}

	// (1,0,0) scaled to (2,0,0), rotated to (0,2,0), moved to (3,0,0)
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{3, 0, 0, 1}, 1e-5) {
		t.Errorf("transformed point = %v", p)
	}
}

func TestTransformInverse(t *testing.T) {
	tr := NewTransform()
	tr.SetPosition(mgl32.Vec3{1, 5, -3})
	tr.SetRotation(mgl32.Vec3{0.3, -0.7, 1.2})
	tr.SetScale(mgl32.Vec3{2, 0.5, 4})

	id := tr.Matrix().Mul4(tr.Inverse())
	if !id.ApproxEqualThreshold(mgl32.Ident4(), 1e-4) {
		t.Errorf("M * M^-1 =\n%v", id)
	}
	if !tr.Inverse().ApproxEqualThreshold(tr.Matrix().Inv(), 1e-4) {
		t.Errorf("composed inverse differs from the general inverse")
	}
}

func TestTransformZeroScaleInverse(t *testing.T) {
	tr := NewTransform()
	tr.SetScale(mgl32.Vec3{0, 1, 1})
	for _, v := range tr.Inverse() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("inverse of a degenerate transform has %v", v)
		}
	}
}
