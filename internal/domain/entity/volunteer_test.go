package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVolunteerHasLocation(t *testing.T) {
	lat, lon := 19.0760, 72.8777

	assert.True(t, (&Volunteer{Latitude: &lat, Longitude: &lon}).HasLocation())
	assert.False(t, (&Volunteer{Latitude: &lat}).HasLocation())
	assert.False(t, (&Volunteer{}).HasLocation())
}

func TestVolunteerAvailableSince(t *testing.T) {
	now := time.Now()
	window := 24 * time.Hour

	recent := now.Add(-time.Hour)
	stale := now.Add(-25 * time.Hour)
	boundary := now.Add(-window)

	assert.True(t, (&Volunteer{LastLoginAt: &recent}).AvailableSince(window, now))
	assert.False(t, (&Volunteer{LastLoginAt: &stale}).AvailableSince(window, now))
	// Exactly at the window edge still counts as available.
	assert.True(t, (&Volunteer{LastLoginAt: &boundary}).AvailableSince(window, now))
	assert.False(t, (&Volunteer{}).AvailableSince(window, now))
}
