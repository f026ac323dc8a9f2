package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	calls int
	err   error
}

func (s *stubGeocoder) Geocode(_ context.Context, city string) (float64, float64, error) {
	s.calls++
	if s.err != nil {
		return 0, 0, s.err
	}
	return 13.41, 122.56, nil
}

func TestResolveStartCities(t *testing.T) {
	r := NewResolver("", nil)

	o, err := r.Resolve(context.Background(), "Cebu")
	require.NoError(t, err)
	assert.Equal(t, "CEB", o.IATA)

	o, err = r.Resolve(context.Background(), " clark ")
	require.NoError(t, err)
	assert.Equal(t, "CRK", o.IATA)

	_, err = r.Resolve(context.Background(), "Iloilo")
	assert.ErrorIs(t, err, ErrUnknownOrigin)
}

func TestResolveGeocodesAndCaches(t *testing.T) {
	g := &stubGeocoder{}
	r := NewResolverWithGeocoder(g, nil)

	o, err := r.Resolve(context.Background(), "Iloilo")
	require.NoError(t, err)
	assert.InDelta(t, 13.41, o.Lat, 1e-9)
	assert.Empty(t, o.IATA)

	_, err = r.Resolve(context.Background(), "ILOILO")
	require.NoError(t, err)
	assert.Equal(t, 1, g.calls)
}

func TestResolveGeocodeFailure(t *testing.T) {
	r := NewResolverWithGeocoder(&stubGeocoder{err: errors.New("ZERO_RESULTS")}, nil)

	_, err := r.Resolve(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, ErrUnknownOrigin)
}

func TestDistanceKm(t *testing.T) {
	manila := StartCities()[0]

	assert.InDelta(t, 0, DistanceKm(manila, manila.Lat, manila.Lon), 1e-6)

	// Manila to Cebu is roughly 570 km as the crow flies.
	cebu := StartCities()[1]
	assert.InDelta(t, 570, DistanceKm(manila, cebu.Lat, cebu.Lon), 15)

	pos := Position(10, 120)
	assert.Equal(t, "din nuvarande position", pos.Name)
}
