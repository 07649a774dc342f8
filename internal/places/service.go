// README: Google Places enrichment for scouted attractions.
package places

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"

	"atlas/internal/modules/scout"
)

// placesClient is the slice of the Google Maps client the service uses.
// The real *maps.Client satisfies it; tests plug in a stub.
type placesClient interface {
	FindPlaceFromText(ctx context.Context, r *maps.FindPlaceFromTextRequest) (maps.FindPlaceFromTextResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// typeTags maps Google place types onto the tag vocabulary the budget and
// scheduling stages understand.
var typeTags = map[string]string{
	"museum":             "museum",
	"art_gallery":        "gallery",
	"park":               "park",
	"zoo":                "family",
	"aquarium":           "family",
	"amusement_park":     "family",
	"church":             "landmark",
	"place_of_worship":   "landmark",
	"tourist_attraction": "landmark",
	"point_of_interest":  "sightseeing",
	"natural_feature":    "outdoor",
	"restaurant":         "food",
	"cafe":               "food",
	"night_club":         "nightlife",
	"bar":                "nightlife",
	"shopping_mall":      "shopping",
	"stadium":            "sports",
}

// Service resolves scouted attractions against the Google Places API.
type Service struct {
	client placesClient
	log    zerolog.Logger
}

// NewService creates a Service backed by a real Google Maps client.
func NewService(apiKey string, log zerolog.Logger) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client, log: log}, nil
}

func newServiceWithClient(client placesClient, log zerolog.Logger) *Service {
	return &Service{client: client, log: log}
}

// Enrich looks up every attraction by name within the city and attaches place
// id, rating, price level, coordinates, and extra tags. Lookups that fail are
// logged and skipped; the attraction list always comes back complete.
func (s *Service) Enrich(ctx context.Context, city string, attractions []scout.Attraction) []scout.Attraction {
	out := make([]scout.Attraction, len(attractions))
	copy(out, attractions)

	for i := range out {
		if err := s.enrichOne(ctx, city, &out[i]); err != nil {
			s.log.Warn().Err(err).Str("attraction", out[i].Name).Msg("places lookup failed")
		}
	}
	return out
}

func (s *Service) enrichOne(ctx context.Context, city string, a *scout.Attraction) error {
	find, err := s.client.FindPlaceFromText(ctx, &maps.FindPlaceFromTextRequest{
		Input:     fmt.Sprintf("%s, %s", a.Name, city),
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields:    []maps.PlaceSearchFieldMask{maps.PlaceSearchFieldMaskPlaceID},
	})
	if err != nil {
		return fmt.Errorf("find place: %w", err)
	}
	if len(find.Candidates) == 0 {
		return fmt.Errorf("no place found for %q", a.Name)
	}
	placeID := find.Candidates[0].PlaceID

	details, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskRatings,
			maps.PlaceDetailsFieldMaskUserRatingsTotal,
			maps.PlaceDetailsFieldMaskPriceLevel,
			maps.PlaceDetailsFieldMaskTypes,
			maps.PlaceDetailsFieldMaskGeometry,
		},
	})
	if err != nil {
		return fmt.Errorf("place details: %w", err)
	}

	a.GooglePlaceID = placeID
	if details.Rating > 0 {
		rating := float64(details.Rating)
		a.GoogleRating = &rating
	}
	if details.UserRatingsTotal > 0 {
		total := details.UserRatingsTotal
		a.GoogleUserRatingsTotal = &total
	}
	if details.PriceLevel > 0 {
		level := details.PriceLevel
		a.GooglePriceLevel = &level
	}
	a.Location = &scout.LatLng{
		Lat: details.Geometry.Location.Lat,
		Lng: details.Geometry.Location.Lng,
	}
	a.Tags = mergeTags(a.Tags, details.Types)
	return nil
}

// mergeTags appends tags derived from Google place types, skipping duplicates.
func mergeTags(tags []string, googleTypes []string) []string {
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		seen[t] = true
	}
	for _, gt := range googleTypes {
		tag, ok := typeTags[gt]
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
