package search

const (
	// DefaultAStarMaxSpeedKmh is the speed bound of the A* heuristic.
	DefaultAStarMaxSpeedKmh = 200.0

	// DefaultEnhancedMaxSpeedKmh is the speed bound of the enhanced A* heuristic.
	DefaultEnhancedMaxSpeedKmh = 150.0

	// DefaultPruneFactor bounds the enhanced A* corridor: successors farther
	// from the destination than this multiple of the best known distance
	// are not relaxed.
	DefaultPruneFactor = 2.0

	cancelCheckInterval = 1024
)

type options struct {
	maxSpeedKmh float64
	pruneFactor float64
}

// Option configures a search.
type Option func(*options)

// WithMaxSpeed sets the speed bound in km/h used to turn straight-line
// distance into a travel time lower bound. The graph's own maximum speed
// limit is used instead when it is higher, so the bound stays admissible.
// Ignored by BFS and Dijkstra.
func WithMaxSpeed(kmh float64) Option {
	return func(o *options) {
		o.maxSpeedKmh = kmh
	}
}

// WithPruneFactor sets the corridor factor of the enhanced A* search.
// Values <= 1 are ignored.
func WithPruneFactor(f float64) Option {
	return func(o *options) {
		if f > 1 {
			o.pruneFactor = f
		}
	}
}

func applyOptions(defaultSpeed float64, optFns []Option) options {
	o := options{
		maxSpeedKmh: defaultSpeed,
		pruneFactor: DefaultPruneFactor,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.maxSpeedKmh <= 0 {
		o.maxSpeedKmh = defaultSpeed
	}
	return o
}
