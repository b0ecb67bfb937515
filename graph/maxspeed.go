package graph

import (
	"strconv"
	"strings"
)

// DefaultMaxSpeedKmh is assumed for roads without a usable speed limit.
const DefaultMaxSpeedKmh = 30

// ParseMaxSpeed interprets OSM maxspeed tag values. Only plain decimal
// integers are understood; when several are given the lowest wins. Values
// such as "walk", "50 mph" or "" are ignored. DefaultMaxSpeedKmh is returned
// when no value is usable.
func ParseMaxSpeed(values ...string) int {
	best := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			continue
		}
		if best == 0 || n < best {
			best = n
		}
	}
	if best == 0 {
		return DefaultMaxSpeedKmh
	}
	return best
}
