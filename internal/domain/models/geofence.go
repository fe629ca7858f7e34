// internal/domain/models/geofence.go
package models

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Geofence is the office boundary configured by an administrator. It is
// display data only; nothing computes containment against it.
type Geofence struct {
	Name         string
	Center       GeoPoint
	RadiusMeters int
}
