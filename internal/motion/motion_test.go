package motion

import (
	"math"
	"testing"
)

func TestAxisDecaysToRest(t *testing.T) {
	a := NewAxis(60)
	a.Hold(3)

	if got := a.Update(); got != 3 {
		t.Fatalf("first Update() = %v, want 3", got)
	}

	prev := a.Velocity
	if prev >= 3 || prev <= 0 {
		t.Fatalf("velocity after one frame = %v, want in (0, 3)", prev)
	}
	for range 600 {
		a.Update()
		if a.Velocity < 0 {
			t.Fatalf("critically damped axis overshot to %v", a.Velocity)
		}
		if a.Velocity > prev {
			t.Fatalf("velocity rose from %v to %v", prev, a.Velocity)
		}
		prev = a.Velocity
	}
	if a.Velocity != 0 {
		t.Errorf("velocity after 10s = %v, want 0", a.Velocity)
	}
}

func TestControllerFactors(t *testing.T) {
	tests := []struct {
		name     string
		invert   bool
		press    func(c *Controller)
		wantMove float64
		wantTurn float64
	}{
		{"forward", false, (*Controller).Forward, 3.0 / 60, 0},
		{"backward", false, (*Controller).Backward, -3.0 / 60, 0},
		{"turn left", false, (*Controller).TurnLeft, 0, 2.0 / 60},
		{"turn right", false, (*Controller).TurnRight, 0, -2.0 / 60},
		{"turn left inverted", true, (*Controller).TurnLeft, 0, -2.0 / 60},
		{"turn right inverted", true, (*Controller).TurnRight, 0, 2.0 / 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController(60, 3, 2)
			c.InvertTurn = tc.invert
			tc.press(c)

			move, turn := c.Step()
			if math.Abs(move-tc.wantMove) > 1e-12 || math.Abs(turn-tc.wantTurn) > 1e-12 {
				t.Errorf("Step() = (%v, %v), want (%v, %v)", move, turn, tc.wantMove, tc.wantTurn)
			}
		})
	}
}

func TestControllerIdle(t *testing.T) {
	c := NewController(0, 3, 2)
	if move, turn := c.Step(); move != 0 || turn != 0 {
		t.Errorf("idle Step() = (%v, %v), want zero", move, turn)
	}

	c.Forward()
	c.TurnLeft()
	c.Stop()
	if move, turn := c.Step(); move != 0 || turn != 0 {
		t.Errorf("Step() after Stop = (%v, %v), want zero", move, turn)
	}
}
