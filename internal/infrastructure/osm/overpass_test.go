package osm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roadwatch/internal/domain/road"
)

func overpassServer(t *testing.T, status int, body string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if capture != nil {
			*capture = r.PostFormValue("data")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestSearchRoadsByName(t *testing.T) {
	const payload = `{"elements":[
		{"type":"way","id":100,"tags":{"name":"MG Road"},"geometry":[{"lat":12.9,"lon":77.6},{"lat":13.0,"lon":77.7}]},
		{"type":"way","id":100,"tags":{"name":"MG Road"},"geometry":[{"lat":12.9,"lon":77.6}]},
		{"type":"way","id":200,"tags":{"ref":"NH 48"},"geometry":[{"lat":12.8,"lon":77.5}]},
		{"type":"way","id":300,"tags":{"name":"No Geometry"}},
		{"type":"node","id":400}
	]}`
	var query string
	srv := overpassServer(t, http.StatusOK, payload, &query)
	defer srv.Close()

	c := NewClient(srv.URL)
	ways, err := c.SearchRoadsByName(context.Background(), "MG Road", 12.9, 77.6, 0)
	if err != nil {
		t.Fatalf("SearchRoadsByName err: %v", err)
	}
	// Duplicate way, geometry-less way and node are all dropped.
	if len(ways) != 2 {
		t.Fatalf("want 2 ways, got %d: %+v", len(ways), ways)
	}
	if ways[0].WayID != "100" || ways[0].Name != "MG Road" {
		t.Fatalf("first way: %+v", ways[0])
	}
	// ref is the fallback display name.
	if ways[1].Name != "NH 48" {
		t.Fatalf("ref fallback: %+v", ways[1])
	}
	// [lng, lat] ordering in geometry.
	if ways[0].Geometry[0] != [2]float64{77.6, 12.9} {
		t.Fatalf("geometry ordering: %v", ways[0].Geometry[0])
	}
	// Default radius lands in the query.
	if !strings.Contains(query, "around:5000,") {
		t.Fatalf("default radius missing from query:\n%s", query)
	}

	// Radius is capped.
	if _, err := c.SearchRoadsByName(context.Background(), "MG Road", 12.9, 77.6, 9_000_000); err != nil {
		t.Fatalf("SearchRoadsByName err: %v", err)
	}
	if !strings.Contains(query, "around:50000,") {
		t.Fatalf("radius not capped:\n%s", query)
	}
}

func TestSearchRoadsByName_ShortQuery(t *testing.T) {
	c := NewClient("http://unused.invalid")
	if _, err := c.SearchRoadsByName(context.Background(), " M ", 0, 0, 0); !errors.Is(err, road.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestGetWayByID(t *testing.T) {
	srv := overpassServer(t, http.StatusOK,
		`{"elements":[{"type":"way","id":42,"tags":{"name":"Ring Road","highway":"trunk"},"geometry":[{"lat":1,"lon":2},{"lat":3,"lon":4}]}]}`, nil)
	defer srv.Close()

	c := NewClient(srv.URL)
	w, err := c.GetWayByID(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetWayByID err: %v", err)
	}
	if w.WayID != "42" || w.Name != "Ring Road" || len(w.Geometry) != 2 {
		t.Fatalf("way: %+v", w)
	}
	if w.Tags["highway"] != "trunk" {
		t.Fatalf("tags: %v", w.Tags)
	}

	if _, err := c.GetWayByID(context.Background(), "not-a-number"); !errors.Is(err, road.ErrValidation) {
		t.Fatalf("non-numeric id: want ErrValidation, got %v", err)
	}
}

func TestGetWayByID_NotFound(t *testing.T) {
	srv := overpassServer(t, http.StatusOK, `{"elements":[]}`, nil)
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.GetWayByID(context.Background(), "42"); !errors.Is(err, road.ErrWayNotFound) {
		t.Fatalf("want ErrWayNotFound, got %v", err)
	}
}

func TestQuery_UpstreamErrors(t *testing.T) {
	srv := overpassServer(t, http.StatusGatewayTimeout, "overloaded", nil)
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.GetWayByID(context.Background(), "42"); !errors.Is(err, road.ErrUpstream) {
		t.Fatalf("gateway timeout: want ErrUpstream, got %v", err)
	}

	bad := overpassServer(t, http.StatusOK, "<html>not json</html>", nil)
	defer bad.Close()
	c = NewClient(bad.URL)
	if _, err := c.GetWayByID(context.Background(), "42"); !errors.Is(err, road.ErrUpstream) {
		t.Fatalf("bad payload: want ErrUpstream, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		tags map[string]string
		want string
	}{
		{map[string]string{"name": "MG Road", "ref": "NH 48"}, "MG Road"},
		{map[string]string{"ref": "NH 48", "alt_name": "Old Pune Rd"}, "NH 48"},
		{map[string]string{"alt_name": "Old Pune Rd"}, "Old Pune Rd"},
		{map[string]string{}, "Unnamed Road"},
		{nil, "Unnamed Road"},
	}
	for _, tc := range cases {
		if got := displayName(tc.tags); got != tc.want {
			t.Fatalf("displayName(%v) = %q, want %q", tc.tags, got, tc.want)
		}
	}
}
