package geo

import (
	"strconv"
	"strings"
)

// Viewer is the resolved position of the requesting client.
type Viewer struct {
	Coordinates Coordinates `json:"coordinates"`
	Label       string      `json:"label"`
	IsReal      bool        `json:"isReal"`
}

var (
	londonCenter = Coordinates{Lat: 51.5074, Lng: -0.1278}
	parisCenter  = Coordinates{Lat: 48.8566, Lng: 2.3522}
)

// ParisCenter is the default city center used when a venue never resolves
// coordinates.
func ParisCenter() Coordinates {
	return parisCenter
}

// ResolveViewer returns the viewer position from explicit coordinates when
// both are present and parseable, otherwise a locale-derived fallback city:
// a UK locale maps to London, anything else to Paris.
func ResolveViewer(latStr, lngStr, acceptLanguage string) Viewer {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if latErr == nil && lngErr == nil {
		return Viewer{
			Coordinates: Coordinates{Lat: lat, Lng: lng},
			Label:       "current position",
			IsReal:      true,
		}
	}

	if isUKLocale(acceptLanguage) {
		return Viewer{Coordinates: londonCenter, Label: "London", IsReal: false}
	}
	return Viewer{Coordinates: parisCenter, Label: "Paris", IsReal: false}
}

func isUKLocale(acceptLanguage string) bool {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if idx := strings.IndexByte(tag, ';'); idx >= 0 {
			tag = tag[:idx]
		}
		if tag == "en-gb" || strings.HasSuffix(tag, "-gb") {
			return true
		}
	}
	return false
}
