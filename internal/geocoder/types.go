package geocoder

// LookupRequest represents the query parameters for an address lookup.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// Result is one geocoded match: coordinates in decimal degrees plus the
// normalized formatted address. The three fields are the atomic output of a
// single lookup and are persisted together or not at all.
type Result struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
