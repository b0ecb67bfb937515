package distance

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean earth radius used by all calculations.
const EarthRadiusKm = 6371.0088

// Haversine returns the great-circle distance in kilometers between two
// coordinates given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := phi2 - phi1
	dLambda := radians(lon2) - radians(lon1)

	sinPhi := math.Sin(dPhi * 0.5)
	sinLambda := math.Sin(dLambda * 0.5)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	// Rounding can push h slightly past 1 for antipodal points.
	if h > 1 {
		h = 1
	}
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// Metric identifies a distance function over coordinates.
type Metric int

const (
	MetricHaversine Metric = iota
	MetricEquirectangular
)

func (m Metric) String() string {
	switch m {
	case MetricHaversine:
		return "Haversine"
	case MetricEquirectangular:
		return "Equirectangular"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for coordinate distance calculation.
type Func func(lat1, lon1, lat2, lon2 float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricHaversine:
		return Haversine, nil
	case MetricEquirectangular:
		return Equirectangular, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// Equirectangular approximates the distance in kilometers with a flat
// projection around the mean latitude. It is cheaper than Haversine and
// accurate for the short spans found inside a single city.
func Equirectangular(lat1, lon1, lat2, lon2 float64) float64 {
	x := (radians(lon2) - radians(lon1)) * math.Cos(radians(lat1+lat2)*0.5)
	y := radians(lat2) - radians(lat1)
	return EarthRadiusKm * math.Sqrt(x*x+y*y)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
