package runner

import "math"

// Obstacle is the single hazard every runner senses. It moves right to left
// and wraps back to the right edge, a little faster each time.
type Obstacle struct {
	X, Y  float64
	W, H  float64
	Speed float64 // px/ms
}

// NewObstacle places the obstacle at the right edge of the world, on the ground.
func NewObstacle(cfg *Config) Obstacle {
	return Obstacle{
		X:     cfg.WorldWidth,
		Y:     cfg.GroundY - cfg.ObstacleHeight,
		W:     cfg.ObstacleWidth,
		H:     cfg.ObstacleHeight,
		Speed: cfg.ObstacleSpeed,
	}
}

// Bounds implements Entity.
func (o Obstacle) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Advance moves the obstacle by dt milliseconds.
func (o Obstacle) Advance(dt float64, cfg *Config) Obstacle {
	o.X -= o.Speed * dt
	if o.X+o.W < 0 {
		o.X = cfg.WorldWidth
		o.Speed = math.Min(o.Speed+cfg.ObstacleAcceleration, cfg.ObstacleMaxSpeed)
	}
	return o
}
