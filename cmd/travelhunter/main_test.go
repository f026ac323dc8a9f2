package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

func TestFollowedDestinations(t *testing.T) {
	got, err := followedDestinations(" Siargao, baguio,,siargao")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "siargao", got[0].ID, "catalog order")
	assert.Equal(t, "baguio", got[1].ID)

	_, err = followedDestinations("boracay,atlantis")
	assert.ErrorIs(t, err, weather.ErrUnknownDestination)
	assert.ErrorContains(t, err, "atlantis")
}
