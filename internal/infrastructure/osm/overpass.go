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
	DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

	userAgent = "RoadWatch/1.0"

	maxSearchRadiusMeters = 50000
	minQueryLen           = 2

	// Upstream Overpass timeout embedded in the query; the HTTP client
	// allows a little slack on top.
	overpassTimeoutSecs = 25
)

// Client queries the Overpass API for way data.
type Client struct {
	httpc   *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultOverpassURL
	}
	return &Client{
		httpc:   &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

type overpassGeom struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []overpassGeom    `json:"geometry"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// SearchRoadsByName finds highway ways whose name matches (case-insensitive)
// within radiusMeters of (lat,lng). Results are deduplicated by way id.
func (c *Client) SearchRoadsByName(ctx context.Context, name string, lat, lng float64, radiusMeters int) ([]road.Way, error) {
	name = strings.TrimSpace(name)
	if len(name) < minQueryLen {
		return nil, fmt.Errorf("%w: search query must be at least %d characters", road.ErrValidation, minQueryLen)
	}
	if radiusMeters <= 0 {
		radiusMeters = 5000
	}
	if radiusMeters > maxSearchRadiusMeters {
		radiusMeters = maxSearchRadiusMeters
	}

	escaped := strings.ReplaceAll(name, `"`, `\"`)
	ql := fmt.Sprintf(`[out:json][timeout:%d];
(
  way["highway"]["name"~"%s",i](around:%d,%f,%f);
);
out geom;`, overpassTimeoutSecs, escaped, radiusMeters, lat, lng)

	resp, err := c.query(ctx, ql)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var out []road.Way
	for _, el := range resp.Elements {
		if el.Type != "way" || len(el.Geometry) == 0 || seen[el.ID] {
			continue
		}
		seen[el.ID] = true
		out = append(out, toWay(el))
	}
	return out, nil
}

// GetWayByID fetches one way with geometry. A missing way is
// road.ErrWayNotFound.
func (c *Client) GetWayByID(ctx context.Context, wayID string) (*road.Way, error) {
	if _, err := strconv.ParseInt(wayID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: way id must be numeric", road.ErrValidation)
	}
	ql := fmt.Sprintf("[out:json][timeout:%d];\nway(%s);\nout geom;", overpassTimeoutSecs, wayID)

	resp, err := c.query(ctx, ql)
	if err != nil {
		return nil, err
	}
	if len(resp.Elements) == 0 {
		return nil, road.ErrWayNotFound
	}
	w := toWay(resp.Elements[0])
	return &w, nil
}

// FetchHighwaysInBBox returns all highway ways inside a bounding box,
// optionally restricted to a highway-class regex (e.g. "NH" against ref).
// Used by the bulk importer.
func (c *Client) FetchHighwaysInBBox(ctx context.Context, bbox road.BBox, refFilter string) ([]road.Way, error) {
	filter := ""
	if refFilter != "" {
		filter = fmt.Sprintf(`["ref"~"%s",i]`, strings.ReplaceAll(refFilter, `"`, `\"`))
	}
	ql := fmt.Sprintf(`[out:json][timeout:180];
(
  way["highway"]%s(%f,%f,%f,%f);
);
out geom;`, filter, bbox.MinLat, bbox.MinLng, bbox.MaxLat, bbox.MaxLng)

	resp, err := c.query(ctx, ql)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool)
	var out []road.Way
	for _, el := range resp.Elements {
		if el.Type != "way" || len(el.Geometry) == 0 || seen[el.ID] {
			continue
		}
		seen[el.ID] = true
		out = append(out, toWay(el))
	}
	return out, nil
}

func (c *Client) query(ctx context.Context, ql string) (*overpassResponse, error) {
	form := url.Values{"data": {ql}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", road.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: overpass returned status %d", road.ErrUpstream, resp.StatusCode)
	}
	var out overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: bad overpass payload", road.ErrUpstream)
	}
	return &out, nil
}

func toWay(el overpassElement) road.Way {
	coords := make(road.LineString, 0, len(el.Geometry))
	for _, g := range el.Geometry {
		coords = append(coords, [2]float64{g.Lon, g.Lat})
	}
	return road.Way{
		WayID:    strconv.FormatInt(el.ID, 10),
		Name:     displayName(el.Tags),
		Geometry: coords,
		Tags:     el.Tags,
	}
}

// displayName picks name > ref > alt_name, falling back to "Unnamed Road".
func displayName(tags map[string]string) string {
	for _, k := range []string{"name", "ref", "alt_name"} {
		if v := tags[k]; v != "" {
			return v
		}
	}
	return "Unnamed Road"
}
