// Package deeplink builds turn-by-turn direction links for a station
// coordinate. Callers should try the app link first and fall back to the
// universal web link when the maps application is not installed.
package deeplink

import (
	"fmt"
	"net/url"
)

const (
	appScheme = "comgooglemaps"
	webBase   = "https://www.google.com/maps/dir/"
)

// Links holds the preferred app deeplink and its web fallback.
type Links struct {
	App string
	Web string
}

// Directions builds direction links to the given coordinate. name labels the
// destination in the app link and may be empty.
func Directions(lat, lng float64, name string) Links {
	dest := fmt.Sprintf("%f,%f", lat, lng)

	appQuery := url.Values{}
	if name != "" {
		appQuery.Set("q", name)
	}
	appQuery.Set("daddr", dest)
	appQuery.Set("directionsmode", "driving")

	webQuery := url.Values{}
	webQuery.Set("api", "1")
	webQuery.Set("destination", dest)
	webQuery.Set("travelmode", "driving")

	return Links{
		App: appScheme + "://?" + appQuery.Encode(),
		Web: webBase + "?" + webQuery.Encode(),
	}
}
