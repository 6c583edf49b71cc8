package object

import (
	"math"

	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/vmath"
)

// Camera is the player pose. Yaw and Pitch are in degrees; yaw -90 looks
// down the negative Z axis.
type Camera struct {
	Position vmath.Vector3
	Yaw      float64
	Pitch    float64
	Up       vmath.Vector3
}

// NewCamera places the player at eye height on the arena's start line.
func NewCamera(arena config.ArenaTuning) Camera {
	return Camera{
		Position: vmath.V3(0, arena.EyeHeight, arena.StartZ),
		Yaw:      -90,
		Up:       vmath.V3(0, 1, 0),
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Forward returns the unit view direction.
func (c Camera) Forward() vmath.Vector3 {
	yaw, pitch := radians(c.Yaw), radians(c.Pitch)
	return vmath.V3(
		math.Cos(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw)*math.Cos(pitch),
	)
}

// ForwardFlat returns the view direction projected onto the ground.
func (c Camera) ForwardFlat() vmath.Vector3 {
	yaw := radians(c.Yaw)
	return vmath.V3(math.Cos(yaw), 0, math.Sin(yaw))
}

// Right returns the horizontal unit vector to the player's right.
func (c Camera) Right() vmath.Vector3 {
	return c.ForwardFlat().Cross(c.Up).Normalize()
}

// ViewPoint is the point one unit ahead of the eye.
func (c Camera) ViewPoint() vmath.Vector3 {
	return c.Position.Add(c.Forward())
}

// Move walks forward and sideways on the ground plane and keeps the player
// inside the arena.
func (c *Camera) Move(forward, strafe float64, arena config.ArenaTuning) {
	step := c.ForwardFlat().Scale(forward).Add(c.Right().Scale(strafe))
	c.Position = c.Position.Add(step)
	c.Position.X = math.Max(-arena.HalfWidth, math.Min(arena.HalfWidth, c.Position.X))
	c.Position.Z = math.Max(-arena.HalfDepth, math.Min(arena.HalfDepth, c.Position.Z))
}

// Look turns the view. Pitch is clamped short of straight up and down.
func (c *Camera) Look(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 360)
	c.Pitch = math.Max(-config.MaxPitch, math.Min(config.MaxPitch, c.Pitch+dpitch))
}
