package types

// Location is a DataPoint forecast site resolved from a human-readable name
type Location struct {
	Name string `json:"name" example:"London"`
	ID   string `json:"id" example:"352409"`
}

// Site contains the full metadata DataPoint publishes for a forecast site
type Site struct {
	Location
	Latitude        float64 `json:"latitude" example:"51.5081"`
	Longitude       float64 `json:"longitude" example:"-0.1248"`
	ElevationMeters float64 `json:"elevation_meters" example:"5.0"`
	Region          string  `json:"region,omitempty" example:"se"`
	UnitaryAuthArea string  `json:"unitary_auth_area,omitempty" example:"Greater London"`
}
