// Package lighting converts light placement settings into light directions.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tinyrender/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around the Y axis
// starting from +Z; latitude is the elevation above the XZ plane.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math32.Pi / 180
	lat := latitude * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}

// Direction returns dir normalized, or the sun direction for the given
// angles when dir is the zero vector.
func Direction(dir math.Vec3, longitude, latitude float32) math.Vec3 {
	if dir == (math.Vec3{}) {
		return SunDirection(longitude, latitude)
	}
	return dir.Normalize()
}
