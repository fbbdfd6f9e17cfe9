package runner

// Body is the physical state of one runner.
type Body struct {
	X, Y     float64 // top-left corner
	W, H     float64
	VY       float64 // vertical velocity, negative is up
	Airborne bool
}

// NewBody places a runner on the ground at its starting position.
func NewBody(cfg *Config) Body {
	return Body{
		X: cfg.RunnerX,
		Y: cfg.GroundY - cfg.RunnerHeight,
		W: cfg.RunnerWidth,
		H: cfg.RunnerHeight,
	}
}

// Bounds implements Entity.
func (b Body) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Integrate advances the body by dt milliseconds. A jump request only takes
// effect on the ground. Landing clamps the body to the ground and ends the jump.
func Integrate(b Body, jump bool, dt float64, cfg *Config) Body {
	if jump && !b.Airborne {
		b.VY = -cfg.JumpVelocity
		b.Airborne = true
	}
	if !b.Airborne {
		return b
	}

	b.VY += cfg.Gravity * dt
	b.Y += b.VY * dt

	floor := cfg.GroundY - b.H
	if b.Y >= floor {
		b.Y = floor
		b.VY = 0
		b.Airborne = false
	}
	return b
}
