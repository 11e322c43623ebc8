package models

import "fmt"

// Query carries the caller supplied parameters of one forecast request.
// Empty strings fall back to the configured defaults.
type Query struct {
	Lat          float64  `json:"lat" example:"40.7128"`
	Lon          float64  `json:"lon" example:"-74.006"`
	Language     string   `json:"lang,omitempty" example:"en"`
	Units        string   `json:"units,omitempty" example:"si"`
	Exclude      []string `json:"exclude,omitempty" example:"minutely,flags"`
	ExtendHourly bool     `json:"extend_hourly,omitempty"`
}

func (q *Query) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f lang: %q units: %q exclude: %v extend: %t",
		q.Lat, q.Lon, q.Language, q.Units, q.Exclude, q.ExtendHourly)
}
