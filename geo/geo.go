// Package geo computes event/station geometry on the WGS84 ellipsoid.
package geo

import "github.com/StefanSchroeder/Golang-Ellipsoid/ellipsoid"

var wgs84 = ellipsoid.Init("WGS84", ellipsoid.Degrees, ellipsoid.Meter,
	ellipsoid.LongitudeIsSymmetric, ellipsoid.BearingNotSymmetric)

// DistAzimuth returns the great-circle distance in meters, the forward
// azimuth from point 1 to point 2 and the back azimuth from point 2 to
// point 1, all azimuths in degrees [0, 360).
func DistAzimuth(lat1, lon1, lat2, lon2 float64) (dist, az, baz float64) {
	dist, az = wgs84.To(lat1, lon1, lat2, lon2)
	_, baz = wgs84.To(lat2, lon2, lat1, lon1)
	return dist, az, baz
}

// BackAzimuth returns the bearing from the station back toward the event in
// degrees [0, 360).
func BackAzimuth(eventLat, eventLon, stationLat, stationLon float64) float64 {
	_, _, baz := DistAzimuth(eventLat, eventLon, stationLat, stationLon)
	return baz
}
