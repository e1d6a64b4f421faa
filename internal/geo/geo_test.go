package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticProvider(t *testing.T) {
	p := StaticProvider{Coords: Coordinates{Lat: 52.5, Lng: 13.4}}

	coords, err := p.CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("CurrentPosition failed: %v", err)
	}
	if coords.Lat != 52.5 || coords.Lng != 13.4 {
		t.Errorf("Unexpected coordinates: %+v", coords)
	}
}

func TestStaticProviderDenied(t *testing.T) {
	p := StaticProvider{Denied: true}

	_, err := p.CurrentPosition(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied, got %v", err)
	}
}

func TestNominatimReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") == "" || r.URL.Query().Get("lon") == "" {
			t.Error("Missing lat/lon query parameters")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Unter den Linden, Berlin"}`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL)
	address, err := g.ReverseGeocode(context.Background(), Coordinates{Lat: 52.51, Lng: 13.39})
	if err != nil {
		t.Fatalf("ReverseGeocode failed: %v", err)
	}
	if address != "Unter den Linden, Berlin" {
		t.Errorf("Unexpected address: %s", address)
	}
}

func TestNominatimServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL)
	if _, err := g.ReverseGeocode(context.Background(), Coordinates{}); err == nil {
		t.Error("Expected error for server failure")
	}
}
