// Package geo defines the location collaborator boundary: a provider for
// the device's current position and an optional reverse geocoder that
// resolves a human-readable address.
package geo

import (
	"context"
	"errors"
)

// ErrPermissionDenied indicates the user refused location access. It is
// surfaced to the caller for a user prompt and never retried
// automatically.
var ErrPermissionDenied = errors.New("location permission denied")

// Coordinates is a geographic position.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Provider yields the device's current position. Implementations may fail
// with ErrPermissionDenied.
type Provider interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// ReverseGeocoder resolves coordinates to an address. Resolution is best
// effort; callers treat a failure as "no address" rather than an error.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coords Coordinates) (string, error)
}

// StaticProvider returns a fixed position, standing in for a device
// sensor when coordinates arrive from flags or test fixtures.
type StaticProvider struct {
	Coords Coordinates
	// Denied simulates a refused permission prompt.
	Denied bool
}

// CurrentPosition implements Provider.
func (p StaticProvider) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	if p.Denied {
		return Coordinates{}, ErrPermissionDenied
	}
	return p.Coords, nil
}
