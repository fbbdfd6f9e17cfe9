package runner

// SensorCount is the length of the vector produced by Sense.
const SensorCount = 5

// Sense builds a runner's input vector, in order: its horizontal offset from the
// start line, its height above the ground, the obstacle's horizontal position,
// the obstacle's height above the ground and the obstacle's speed.
//
// Lengths are measured in runner widths or heights and are zero in the resting
// state. The obstacle's horizontal position is taken relative to the runner's
// front edge and grows as the obstacle approaches: it is strongly negative while
// the obstacle is far away, zero when it touches the runner and positive once it
// has passed. Network parameters never go below the mutation floor, so the
// decision output can only grow with its inputs; every sensor therefore rises
// toward the situation that calls for a jump. Speed is a fraction of the
// maximum obstacle speed.
func Sense(b Body, o Obstacle, cfg *Config) []float64 {
	return []float64{
		(b.X - cfg.RunnerX) / cfg.RunnerWidth,
		(cfg.GroundY - (b.Y + b.H)) / cfg.RunnerHeight,
		(b.X + b.W - o.X) / cfg.RunnerWidth,
		(cfg.GroundY - (o.Y + o.H)) / cfg.ObstacleHeight,
		o.Speed / cfg.ObstacleMaxSpeed,
	}
}
