package native

import "math"

// Force is a pressure sample.
type Force interface {
	// Normalized returns the force on a device independent scale, usually [0, 1].
	Normalized() float64
}

// Calibrated is a force reported against the device's maximum force.
type Calibrated struct {
	Force            float64
	MaxPossibleForce float64
	// AltitudeAngle is the pen angle to the surface in radians, nil when unknown.
	AltitudeAngle *float64
}

// NormalizedForce is a force that the backend already normalized.
type NormalizedForce float64

// Normalized divides the perpendicular component of the force by the maximum
// possible force. A non-positive maximum yields 0.
func (c Calibrated) Normalized() float64 {
	if c.MaxPossibleForce <= 0 || math.IsNaN(c.MaxPossibleForce) {
		return 0
	}

	force := c.Force
	if c.AltitudeAngle != nil {
		if s := math.Sin(*c.AltitudeAngle); s != 0 {
			force /= s
		}
	}
	return force / c.MaxPossibleForce
}

func (f NormalizedForce) Normalized() float64 {
	return float64(f)
}
