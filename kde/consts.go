package kde

const (
	// grid extends cut * bw past the data on each side, unless clipped
	DefaultCut      = 3.0
	DefaultBwAdjust = 1.0

	DefaultGridSize     = 512
	MinEstimatePointCnt = 5

	// Gauss-Legendre nodes per grid step when integrating the estimate.
	// A step is much narrower than the bandwidth, so few are needed.
	cdfQuadNodes = 8
)
