package osm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roadwatch/internal/domain/road"
)

func TestSearchPlaces(t *testing.T) {
	var gotLimit, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`[
			{"display_name":"Bengaluru, Karnataka, India","lat":"12.9716","lon":"77.5946","type":"city","importance":0.85},
			{"display_name":"Bengaluru Rural","lat":"13.2","lon":"77.7","type":"county","importance":"0.42"}
		]`))
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL)
	places, err := n.SearchPlaces(context.Background(), "Bengaluru", 0)
	if err != nil {
		t.Fatalf("SearchPlaces err: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("want 2 places, got %d", len(places))
	}
	if places[0].Lat != 12.9716 || places[0].Lon != 77.5946 {
		t.Fatalf("coordinates must be parsed from strings: %+v", places[0])
	}
	// Importance arrives as a float or a string depending on the instance.
	if places[0].Importance != 0.85 || places[1].Importance != 0.42 {
		t.Fatalf("importance: %+v", places)
	}
	if gotLimit != "10" {
		t.Fatalf("zero limit must default to 10, sent %q", gotLimit)
	}
	if gotUA != userAgent {
		t.Fatalf("identifying User-Agent required, sent %q", gotUA)
	}
}

func TestSearchPlaces_Errors(t *testing.T) {
	n := NewNominatim("http://unused.invalid")
	if _, err := n.SearchPlaces(context.Background(), "x", 5); !errors.Is(err, road.ErrValidation) {
		t.Fatalf("short query: want ErrValidation, got %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	n = NewNominatim(srv.URL)
	if _, err := n.SearchPlaces(context.Background(), "Bengaluru", 5); !errors.Is(err, road.ErrUpstream) {
		t.Fatalf("throttled: want ErrUpstream, got %v", err)
	}
}
