// Package distance provides great-circle distance calculations between
// geographic coordinates.
//
// # Usage
//
//	km := distance.Haversine(lat1, lon1, lat2, lon2)
//
// Coordinates are in decimal degrees. Results are in kilometers on a sphere
// of radius EarthRadiusKm.
package distance
