// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// Store holds the workplace settings and the office geofence.
type Store struct {
	mu       sync.RWMutex
	settings models.SiteSettings
	geofence models.Geofence
}

// New returns a store holding the default settings and the seeded
// headquarters geofence.
func New() *Store {
	return &Store{
		settings: models.DefaultSiteSettings(),
		geofence: models.Geofence{
			Name:         "Office Headquarters",
			Center:       models.GeoPoint{Lat: 40.7128, Lng: -74.006},
			RadiusMeters: 500,
		},
	}
}

// Get returns the current settings.
func (s *Store) Get(ctx context.Context) models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save replaces the settings. An empty site name or zone falls back to the
// default.
func (s *Store) Save(ctx context.Context, settings models.SiteSettings) {
	if settings.SiteName == "" {
		settings.SiteName = models.DefaultSiteName
	}
	if settings.Timezone == "" {
		settings.Timezone = timezones.DefaultID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Location returns the workplace time zone used for dates on the
// dashboards.
func (s *Store) Location() *time.Location {
	return timezones.Location(s.Get(context.Background()).Timezone)
}

// SiteName returns the configured site name.
func (s *Store) SiteName() string {
	return s.Get(context.Background()).SiteName
}

// Geofence returns the office boundary.
func (s *Store) Geofence(ctx context.Context) models.Geofence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.geofence
}

// SaveGeofence replaces the office boundary.
func (s *Store) SaveGeofence(ctx context.Context, g models.Geofence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geofence = g
}
