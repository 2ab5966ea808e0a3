package handlers

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"janazaboard/internal/geo"
	"janazaboard/internal/models"
)

// FeedFilter is the filter configuration applied to the upcoming list.
// Zero values mean "no constraint".
type FeedFilter struct {
	Search     string
	Period     string // "today", "week", anything else imposes no constraint
	DistanceKm float64
	Viewer     *geo.Coordinates
	Now        time.Time
}

// Recognized distance thresholds, matching the UI options.
var allowedDistances = map[float64]bool{5: true, 10: true, 25: true}

func parseFeedFilter(search, period, distanceStr, latStr, lngStr string, now time.Time) FeedFilter {
	filter := FeedFilter{
		Search: strings.TrimSpace(search),
		Period: strings.ToLower(strings.TrimSpace(period)),
		Now:    now,
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if latErr == nil && lngErr == nil {
		filter.Viewer = &geo.Coordinates{Lat: lat, Lng: lng}
	}

	if distance, err := strconv.ParseFloat(strings.TrimSpace(distanceStr), 64); err == nil && allowedDistances[distance] {
		filter.DistanceKm = distance
	}
	return filter
}

// applyFeedFilter composes the search, period and distance predicates with
// AND, then sorts: chronological ascending by default, distance ascending
// when a distance threshold is active and a viewer location is known.
// The output is always a subset of the input.
func applyFeedFilter(list []models.Announcement, filter FeedFilter) []models.Announcement {
	byDistance := filter.DistanceKm > 0 && filter.Viewer != nil
	search := strings.ToLower(filter.Search)
	from, until := periodBounds(filter.Period, filter.Now)

	kept := make([]models.Announcement, 0, len(list))
	for _, item := range list {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.DeceasedName), search) &&
			!strings.Contains(strings.ToLower(item.VenueName), search) {
			continue
		}
		if !from.IsZero() && (item.PrayerTime.Before(from) || !item.PrayerTime.Before(until)) {
			continue
		}
		if filter.Viewer != nil {
			distance := geo.Distance(*filter.Viewer, item.Coordinates)
			if byDistance && distance > filter.DistanceKm {
				continue
			}
			d := distance
			item.DistanceKm = &d
		}
		kept = append(kept, item)
	}

	if byDistance {
		sort.SliceStable(kept, func(i, j int) bool {
			return *kept[i].DistanceKm < *kept[j].DistanceKm
		})
	} else {
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].PrayerTime.Before(kept[j].PrayerTime)
		})
	}
	return kept
}

// periodBounds returns the half-open [from, until) window for the period, or
// zero times when the period imposes no constraint.
func periodBounds(period string, now time.Time) (time.Time, time.Time) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "today":
		return startOfToday, startOfToday.AddDate(0, 0, 1)
	case "week":
		return startOfToday, startOfToday.AddDate(0, 0, 7)
	default:
		return time.Time{}, time.Time{}
	}
}

// Bounds is the bounding box of a result set, used by the client to fit the
// map view to the visible markers.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

func computeBounds(list []models.Announcement) *Bounds {
	if len(list) == 0 {
		return nil
	}
	bounds := &Bounds{
		MinLat: list[0].Coordinates.Lat,
		MaxLat: list[0].Coordinates.Lat,
		MinLng: list[0].Coordinates.Lng,
		MaxLng: list[0].Coordinates.Lng,
	}
	for _, item := range list[1:] {
		if item.Coordinates.Lat < bounds.MinLat {
			bounds.MinLat = item.Coordinates.Lat
		}
		if item.Coordinates.Lat > bounds.MaxLat {
			bounds.MaxLat = item.Coordinates.Lat
		}
		if item.Coordinates.Lng < bounds.MinLng {
			bounds.MinLng = item.Coordinates.Lng
		}
		if item.Coordinates.Lng > bounds.MaxLng {
			bounds.MaxLng = item.Coordinates.Lng
		}
	}
	return bounds
}

func directionsURL(coordinates geo.Coordinates) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" +
		strconv.FormatFloat(coordinates.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(coordinates.Lng, 'f', -1, 64)
}

func decorateAnnouncements(list []models.Announcement) []models.Announcement {
	for i := range list {
		list[i].DirectionsURL = directionsURL(list[i].Coordinates)
	}
	return list
}

// sampleAnnouncements is the demo set served when the store is unreachable
// and the sample fallback is enabled.
func sampleAnnouncements(now time.Time) []models.Announcement {
	return []models.Announcement{
		{
			DeceasedName: "Amine Ben Ahmed",
			PrayerTime:   now.Add(2 * time.Hour),
			VenueName:    "Grande Mosquée de Paris",
			VenueAddress: "2bis Place du Puits de l'Ermite, 75005 Paris",
			Coordinates:  geo.Coordinates{Lat: 48.8421, Lng: 2.3556},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			DeceasedName: "Fatima Zahra",
			PrayerTime:   now.Add(5 * time.Hour),
			VenueName:    "Mosquée de Gennevilliers",
			VenueAddress: "18 Rue Paul Vaillant Couturier, 92230 Gennevilliers",
			Coordinates:  geo.Coordinates{Lat: 48.9284, Lng: 2.2989},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			DeceasedName: "Ibrahim Diallo",
			PrayerTime:   now.Add(24 * time.Hour),
			VenueName:    "Mosquée de Créteil",
			VenueAddress: "4 Rue Jean Gabin, 94000 Créteil",
			Coordinates:  geo.Coordinates{Lat: 48.7758, Lng: 2.4578},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
