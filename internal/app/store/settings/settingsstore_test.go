package settingsstore_test

import (
	"context"
	"testing"
	"time"

	settingsstore "github.com/dalemusser/attendhub/internal/app/store/settings"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

func TestStore_Defaults(t *testing.T) {
	s := settingsstore.New()
	ctx := context.Background()

	if got := s.Get(ctx); got != models.DefaultSiteSettings() {
		t.Errorf("Get = %+v", got)
	}
	g := s.Geofence(ctx)
	if g.Name != "Office Headquarters" || g.RadiusMeters != 500 || g.Center.Lat != 40.7128 {
		t.Errorf("Geofence = %+v", g)
	}
}

func TestStore_Save(t *testing.T) {
	s := settingsstore.New()
	ctx := context.Background()

	in := models.SiteSettings{SiteName: "Acme", WorkdayStart: "08:30", WorkdayEnd: "16:30", LateAfterMinutes: 10, AnnualLeaveDays: 25, Timezone: "Europe/Paris"}
	s.Save(ctx, in)
	if got := s.Get(ctx); got != in {
		t.Errorf("Get = %+v, want %+v", got, in)
	}
	if s.SiteName() != "Acme" {
		t.Errorf("SiteName = %q", s.SiteName())
	}
	if s.Location().String() != "Europe/Paris" {
		t.Errorf("Location = %s", s.Location())
	}

	s.Save(ctx, models.SiteSettings{})
	if s.SiteName() != models.DefaultSiteName {
		t.Errorf("empty site name not defaulted: %q", s.SiteName())
	}
	if got := s.Get(ctx).Timezone; got != "UTC" {
		t.Errorf("empty zone not defaulted: %q", got)
	}
	if s.Location() != time.UTC {
		t.Errorf("Location = %s, want UTC", s.Location())
	}
}

func TestStore_SaveGeofence(t *testing.T) {
	s := settingsstore.New()
	ctx := context.Background()
	g := models.Geofence{Name: "Branch", Center: models.GeoPoint{Lat: 51.5, Lng: -0.12}, RadiusMeters: 250}
	s.SaveGeofence(ctx, g)
	if got := s.Geofence(ctx); got != g {
		t.Errorf("Geofence = %+v", got)
	}
}
