package graphics

import "github.com/go-gl/mathgl/mgl32"

// OrthographicCamera looks from its pose transform through an orthographic
// projection. The view-projection is cached under the same dirty discipline
// as Transform.
type OrthographicCamera struct {
	pose       *Transform
	projection mgl32.Mat4

	projDirty      bool
	poseVersion    int
	viewProjection mgl32.Mat4
}

// NewOrthographicCamera uses a near/far range of [-1, 1].
func NewOrthographicCamera(left, right, bottom, top float32) *OrthographicCamera {
	c := &OrthographicCamera{pose: NewTransform()}
	c.SetProjection(left, right, bottom, top)
	return c
}

func (c *OrthographicCamera) SetProjection(left, right, bottom, top float32) {
	c.projection = mgl32.Ortho(left, right, bottom, top, -1, 1)
	c.projDirty = true
}

func (c *OrthographicCamera) Position() mgl32.Vec3 { return c.pose.Position() }

// Rotation is the roll around Z in radians.
func (c *OrthographicCamera) Rotation() float32 { return c.pose.Rotation().Z() }

func (c *OrthographicCamera) SetPosition(p mgl32.Vec3) { c.pose.SetPosition(p) }
func (c *OrthographicCamera) Translate(d mgl32.Vec3)   { c.pose.Translate(d) }
func (c *OrthographicCamera) SetRotation(rad float32)  { c.pose.SetRotation(mgl32.Vec3{0, 0, rad}) }
func (c *OrthographicCamera) Rotate(rad float32)       { c.pose.Rotate(mgl32.Vec3{0, 0, rad}) }

// Pose exposes the camera transform.
func (c *OrthographicCamera) Pose() *Transform { return c.pose }

func (c *OrthographicCamera) Projection() mgl32.Mat4 { return c.projection }

// View undoes the camera pose.
func (c *OrthographicCamera) View() mgl32.Mat4 { return c.pose.Inverse() }

// ViewProjection returns Projection * View, rebuilt only when the projection
// or the pose changed since the last call.
func (c *OrthographicCamera) ViewProjection() mgl32.Mat4 {
	view := c.pose.Inverse()
	if c.projDirty || c.poseVersion != c.pose.recomputes {
		c.viewProjection = c.projection.Mul4(view)
		c.projDirty = false
		c.poseVersion = c.pose.recomputes
	}
	return c.viewProjection
}
