package renderer

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

const (
	moveSpeed     = 0.2
	rotationSpeed = 4.0 // degrees per unit of drag delta
)

// CameraEvent is the closed set of camera interactions. The app translates
// raw input into events; the camera owns all pose math.
type CameraEvent interface {
	isCameraEvent()
}

// Resize changes the output resolution and rebuilds the ray grid.
type Resize struct {
	Width  int
	Height int
}

// RotateXY turns the camera by a drag delta: X yaws around the world Y axis,
// Y pitches around the world X axis.
type RotateXY struct {
	Delta core.Vec2
}

// MoveForward steps the camera along its view direction.
type MoveForward struct{}

// MoveBackward steps the camera against its view direction.
type MoveBackward struct{}

// MoveLeft strafes the camera along its left basis vector.
type MoveLeft struct{}

// MoveRight strafes the camera along its right basis vector.
type MoveRight struct{}

func (Resize) isCameraEvent()       {}
func (RotateXY) isCameraEvent()     {}
func (MoveForward) isCameraEvent()  {}
func (MoveBackward) isCameraEvent() {}
func (MoveLeft) isCameraEvent()     {}
func (MoveRight) isCameraEvent()    {}

// Camera holds a pose plus the precomputed per-pixel ray directions.
// The grid is rebuilt on events, not per frame, so a static camera costs
// nothing between renders.
type Camera struct {
	Width  int
	Height int
	FOV    float64 // vertical field of view in degrees

	Position core.Vec3
	Forward  core.Vec3
	Up       core.Vec3

	// RayDirections holds one normalized direction per pixel in row-major
	// order, matching the renderer's pixel layout.
	RayDirections []core.Vec3
}

// NewCamera creates a camera at the default pose looking down -Z.
func NewCamera(width, height int) *Camera {
	return NewCameraWithPose(width, height, core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))
}

// NewCameraWithPose creates a camera at an explicit position and view
// direction, typically taken from a scene description.
func NewCameraWithPose(width, height int, position, direction core.Vec3) *Camera {
	c := &Camera{
		Width:    width,
		Height:   height,
		FOV:      45,
		Position: position,
		Forward:  direction.Normalize(),
		Up:       core.NewVec3(0, 1, 0),
	}
	c.calculateRayDirections()
	return c
}

// HandleEvent applies a single event and reports whether the camera changed.
// The renderer uses the flag to reset progressive accumulation.
func (c *Camera) HandleEvent(event CameraEvent) bool {
	switch e := event.(type) {
	case Resize:
		if e.Width == c.Width && e.Height == c.Height {
			return false
		}
		c.Width = e.Width
		c.Height = e.Height
	case RotateXY:
		if e.Delta.X == 0 && e.Delta.Y == 0 {
			return false
		}
		pitch := core.RotationX(e.Delta.Y * rotationSpeed * core.Degrees)
		yaw := core.RotationY(e.Delta.X * rotationSpeed * core.Degrees)
		c.Forward = pitch.Multiply(yaw).TransformDirection(c.Forward).Normalize()
	case MoveForward:
		c.Position = c.Position.Add(c.Forward.Multiply(moveSpeed))
	case MoveBackward:
		c.Position = c.Position.Subtract(c.Forward.Multiply(moveSpeed))
	case MoveLeft:
		c.Position = c.Position.Subtract(c.right().Multiply(moveSpeed))
	case MoveRight:
		c.Position = c.Position.Add(c.right().Multiply(moveSpeed))
	}
	c.calculateRayDirections()
	return true
}

func (c *Camera) right() core.Vec3 {
	return c.Forward.Cross(c.Up).Normalize()
}

// calculateRayDirections rebuilds the per-pixel ray grid from the camera
// basis. Screen coordinates run left to right and top to bottom, mapped onto
// [-1, 1] with Y flipped so +Y in camera space points up.
func (c *Camera) calculateRayDirections() {
	if c.Width <= 0 || c.Height <= 0 {
		c.RayDirections = nil
		return
	}

	right := c.right()
	up := right.Cross(c.Forward)

	halfHeight := math.Tan(c.FOV * core.Degrees / 2)
	halfWidth := halfHeight * float64(c.Width) / float64(c.Height)

	if len(c.RayDirections) != c.Width*c.Height {
		c.RayDirections = make([]core.Vec3, c.Width*c.Height)
	}
	for y := 0; y < c.Height; y++ {
		sy := 1 - 2*float64(y)/float64(c.Height)
		vertical := up.Multiply(sy * halfHeight).Add(c.Forward)
		for x := 0; x < c.Width; x++ {
			sx := 2*float64(x)/float64(c.Width) - 1
			dir := right.Multiply(sx * halfWidth).Add(vertical)
			c.RayDirections[y*c.Width+x] = dir.Normalize()
		}
	}
}
