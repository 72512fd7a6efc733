package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// PointInPolygon reports whether (lat, lng) lies inside poly using ray
// casting. poly is a list of [lat, lng] vertices; the closing edge is implied.
func PointInPolygon(lat, lng float64, poly [][2]float64) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		yi, xi := poly[i][0], poly[i][1]
		yj, xj := poly[j][0], poly[j][1]
		if (yi > lat) != (yj > lat) && lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// PathLengthKm sums the haversine length of consecutive [lat, lng] points.
func PathLengthKm(path [][2]float64) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += HaversineKm(path[i-1][0], path[i-1][1], path[i][0], path[i][1])
	}
	return total
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
