package geo

// ResolveRequest represents the query parameters for an address lookup.
type ResolveRequest struct {
	Query string `form:"q" binding:"required,min=2"`
}

// BoundingBox is a rectangular latitude/longitude region.
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// Point is a geographic coordinate. The JSON shape is [lon, lat], matching
// the order map clients expect for plot coordinates.
type Point struct {
	Lon float64
	Lat float64
}

// MarshalJSON encodes the point as a [lon, lat] pair.
func (p Point) MarshalJSON() ([]byte, error) {
	return []byte("[" + formatFloat(p.Lon) + "," + formatFloat(p.Lat) + "]"), nil
}

// Resolution is the outcome of geocoding an address: the search box and the
// geocoded center.
type Resolution struct {
	Box    BoundingBox `json:"box"`
	Center Point       `json:"center"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
