package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

var buildTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestNewSighting_Build_DefaultsTimestamp(t *testing.T) {
	ns := &NewSighting{Model: "three-door", Color: " #FFFFFF ", UserID: "user-1"}

	s, err := ns.Build("id-1", buildTime)
	require.NoError(t, err)

	assert.Equal(t, "id-1", s.ID)
	assert.Equal(t, ThreeDoor, s.Model)
	assert.Equal(t, "#FFFFFF", s.Color)
	assert.Equal(t, "2026-03-14T09:26:53Z", s.Timestamp)
	assert.Equal(t, "user-1", s.UserID)
	assert.False(t, s.Synced)
	assert.Nil(t, s.Latitude)
}

func TestNewSighting_Build_NormalisesTimestamp(t *testing.T) {
	ns := &NewSighting{Model: "five-door", Color: "#000000", Timestamp: "2026-03-14T12:00:00+03:00"}

	s, err := ns.Build("id-2", buildTime)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14T09:00:00Z", s.Timestamp)
}

func TestNewSighting_Build_KeepsLocation(t *testing.T) {
	ns := &NewSighting{Model: "five-door", Color: "#000000", Latitude: floatPtr(35.6895), Longitude: floatPtr(139.6917)}

	s, err := ns.Build("id-3", buildTime)
	require.NoError(t, err)
	require.NotNil(t, s.Latitude)
	assert.InDelta(t, 35.6895, *s.Latitude, 1e-9)
	assert.InDelta(t, 139.6917, *s.Longitude, 1e-9)
}

func TestNewSighting_Validate_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   NewSighting
	}{
		{"missing model", NewSighting{Color: "#FFFFFF"}},
		{"unknown model", NewSighting{Model: "pickup", Color: "#FFFFFF"}},
		{"missing color", NewSighting{Model: "three-door"}},
		{"latitude only", NewSighting{Model: "three-door", Color: "#FFFFFF", Latitude: floatPtr(10)}},
		{"latitude range", NewSighting{Model: "three-door", Color: "#FFFFFF", Latitude: floatPtr(91), Longitude: floatPtr(0)}},
		{"longitude range", NewSighting{Model: "three-door", Color: "#FFFFFF", Latitude: floatPtr(0), Longitude: floatPtr(-181)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNewSighting_Build_BadTimestamp(t *testing.T) {
	ns := &NewSighting{Model: "three-door", Color: "#FFFFFF", Timestamp: "yesterday"}

	_, err := ns.Build("id-4", buildTime)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewSighting_Validate_ColorNotRestrictedToPalette(t *testing.T) {
	ns := &NewSighting{Model: "three-door", Color: "#123456"}
	assert.NoError(t, ns.Validate())
}
