package domain

import "strconv"

// Immutable geographic coordinates (WGS84 decimal degrees).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as "lon,lat" for external API compatibility
// (LocationIQ directions takes lon-first pairs in the URL path).
func (c Coordinates) LonLat() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}
