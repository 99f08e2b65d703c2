package grid

// DefaultLayout is the built-in 24x24 demo world.
var DefaultLayout = []string{
	"111111111111111111111111",
	"1......................1",
	"1......................1",
	"1......................1",
	"1.....22222....3.3.3...1",
	"1.....2...2............1",
	"1.....2...2....3...3...1",
	"1.....2...2............1",
	"1.....22.22....3.3.3...1",
	"1......................1",
	"1......................1",
	"1......................1",
	"1......................1",
	"1......................1",
	"1......................1",
	"1......................1",
	"144444444..............1",
	"14.4....4..............1",
	"14....5.4..............1",
	"14.4....4..............1",
	"14.444444..............1",
	"14.....................1",
	"144444444..............1",
	"111111111111111111111111",
}

// Default start pose for DefaultLayout.
var (
	DefaultPosition  = [2]float64{22, 12}
	DefaultDirection = [2]float64{-1, 0}
	DefaultPlane     = [2]float64{0, 0.66}
)

// Default returns a fresh copy of the built-in map.
func Default() *Map {
	m, err := ParseRows(DefaultLayout)
	if err != nil {
		panic(err)
	}
	return m
}
