package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"roadwatch/internal/domain/road"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

	maxPlaceResults = 10
)

// Place is a Nominatim search hit.
type Place struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

// Nominatim is the place-search collaborator.
type Nominatim struct {
	httpc   *http.Client
	baseURL string
}

func NewNominatim(baseURL string) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &Nominatim{
		httpc:   &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Importance  any    `json:"importance"`
}

// SearchPlaces queries Nominatim. Queries under 2 characters are rejected
// before any HTTP call; limit is capped at 10.
func (n *Nominatim) SearchPlaces(ctx context.Context, q string, limit int) ([]Place, error) {
	q = strings.TrimSpace(q)
	if len(q) < minQueryLen {
		return nil, fmt.Errorf("%w: search query must be at least %d characters", road.ErrValidation, minQueryLen)
	}
	if limit <= 0 || limit > maxPlaceResults {
		limit = maxPlaceResults
	}

	params := url.Values{
		"q":              {q},
		"format":         {"json"},
		"limit":          {strconv.Itoa(limit)},
		"addressdetails": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim requires an identifying User-Agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", road.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nominatim returned status %d", road.ErrUpstream, resp.StatusCode)
	}
	var raw []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: bad nominatim payload", road.ErrUpstream)
	}

	out := make([]Place, 0, len(raw))
	for _, r := range raw {
		lat, _ := strconv.ParseFloat(r.Lat, 64)
		lon, _ := strconv.ParseFloat(r.Lon, 64)
		out = append(out, Place{
			DisplayName: r.DisplayName,
			Lat:         lat,
			Lon:         lon,
			Type:        r.Type,
			Importance:  toFloat(r.Importance),
		})
	}
	return out, nil
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}
