// Package motion turns key presses into smooth per-frame camera factors.
package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settle is the speed below which an axis snaps to rest.
const settle = 1e-4

// Axis is a velocity that a critically damped spring eases back to zero.
type Axis struct {
	Velocity float64 // units per second

	spring harmonica.Spring
	accel  float64 // spring velocity while animating Velocity to 0
}

// NewAxis creates an axis stepped at fps frames per second.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 6 stops within a few frames of a key release;
		// damping 1 means no overshoot past zero.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Hold sets the velocity to v, as while a key is held down.
func (a *Axis) Hold(v float64) {
	a.Velocity = v
	a.accel = 0
}

// Update decays the velocity toward zero and returns the value it had at the
// start of the frame.
func (a *Axis) Update() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	if math.Abs(a.Velocity) < settle && math.Abs(a.accel) < settle {
		a.Velocity, a.accel = 0, 0
	}
	return v
}

// Controller maps movement and turn intents to the factors the engine's
// TransformCam takes.
//
// Turning left yields a positive rotation factor, which turns the view
// counter-clockwise in map space. InvertTurn flips that for callers whose
// map is drawn mirrored.
type Controller struct {
	Move Axis
	Turn Axis

	MoveSpeed  float64 // cells per second
	TurnSpeed  float64 // radians per second
	InvertTurn bool

	dt float64
}

// NewController creates a controller stepped at fps frames per second.
func NewController(fps int, moveSpeed, turnSpeed float64) *Controller {
	if fps <= 0 {
		fps = 60
	}
	return &Controller{
		Move:      NewAxis(fps),
		Turn:      NewAxis(fps),
		MoveSpeed: moveSpeed,
		TurnSpeed: turnSpeed,
		dt:        1 / float64(fps),
	}
}

// Forward starts moving forward.
func (c *Controller) Forward() { c.Move.Hold(c.MoveSpeed) }

// Backward starts moving backward.
func (c *Controller) Backward() { c.Move.Hold(-c.MoveSpeed) }

// TurnLeft starts turning left.
func (c *Controller) TurnLeft() { c.Turn.Hold(c.turnSign() * c.TurnSpeed) }

// TurnRight starts turning right.
func (c *Controller) TurnRight() { c.Turn.Hold(-c.turnSign() * c.TurnSpeed) }

// Stop halts both axes immediately.
func (c *Controller) Stop() {
	c.Move.Hold(0)
	c.Turn.Hold(0)
}

func (c *Controller) turnSign() float64 {
	if c.InvertTurn {
		return -1
	}
	return 1
}

// Step advances one frame and returns the distance to move and the angle to
// turn during it.
func (c *Controller) Step() (move, rotation float64) {
	return c.Move.Update() * c.dt, c.Turn.Update() * c.dt
}
