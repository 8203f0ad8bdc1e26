package graphics

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position, Euler rotation (radians) and scale with lazily
// cached forward and inverse matrices. Mutators mark the cache dirty; the
// accessors rebuild both matrices together on the next read.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	dirty   bool
	matrix  mgl32.Mat4
	inverse mgl32.Mat4

	recomputes int
}

func NewTransform() *Transform {
	return &Transform{scale: mgl32.Vec3{1, 1, 1}, dirty: true}
}

func (t *Transform) Position() mgl32.Vec3 { return t.position }
func (t *Transform) Rotation() mgl32.Vec3 { return t.rotation }
func (t *Transform) Scale() mgl32.Vec3    { return t.scale }

func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.position = p
	t.dirty = true
}

func (t *Transform) SetRotation(r mgl32.Vec3) {
	t.rotation = r
	t.dirty = true
}

func (t *Transform) SetScale(s mgl32.Vec3) {
	t.scale = s
	t.dirty = true
}

func (t *Transform) Translate(d mgl32.Vec3) {
	t.position = t.position.Add(d)
	t.dirty = true
}

func (t *Transform) Rotate(d mgl32.Vec3) {
	t.rotation = t.rotation.Add(d)
	t.dirty = true
}

// ScaleBy adds d to the scale, like Translate and Rotate do for their parts.
func (t *Transform) ScaleBy(d mgl32.Vec3) {
	t.scale = t.scale.Add(d)
	t.dirty = true
}

// Matrix returns Translation * Rotation * Scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	t.recompute()
	return t.matrix
}

// Inverse returns the inverse of Matrix.
func (t *Transform) Inverse() mgl32.Mat4 {
	t.recompute()
	return t.inverse
}

// Dirty reports whether the cached matrices are stale.
func (t *Transform) Dirty() bool { return t.dirty }

func (t *Transform) recompute() {
	if !t.dirty {
		return
	}
	q := eulerQuat(t.rotation)
	translation := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	rotation := q.Mat4()
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())

	t.matrix = translation.Mul4(rotation).Mul4(scale)

	// (T R S)^-1 = S^-1 R^T T^-1, built from the parts. A zero scale axis has
	// no inverse along it; fall back to the general inverse, which yields the
	// zero matrix in that case.
	if t.scale.X() == 0 || t.scale.Y() == 0 || t.scale.Z() == 0 {
		t.inverse = t.matrix.Inv()
	} else {
		invScale := mgl32.Scale3D(1/t.scale.X(), 1/t.scale.Y(), 1/t.scale.Z())
		invRotation := q.Conjugate().Mat4()
		invTranslation := mgl32.Translate3D(-t.position.X(), -t.position.Y(), -t.position.Z())
		t.inverse = invScale.Mul4(invRotation).Mul4(invTranslation)
	}

	t.dirty = false
	t.recomputes++
}

// eulerQuat builds the rotation from Euler angles applied X, then Y, then Z.
func eulerQuat(r mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(r.Z(), r.Y(), r.X(), mgl32.ZYX)
}
