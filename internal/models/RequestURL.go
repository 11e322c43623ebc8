package models

type RequestURL struct {
	Provider string `json:"provider" example:"darksky"`
	URL      string `json:"url" example:"https://api.darksky.net/forecast/REDACTED/40.7128,-74.006?lang=de&units=si"`
}
