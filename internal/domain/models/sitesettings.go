// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is the product name shown in the header and title.
const DefaultSiteName = "AttendHub"

// DefaultTagline is the hero tagline on the marketing homepage.
const DefaultTagline = "Smart attendance tracking for modern teams"

// SiteSettings holds the admin-editable workplace settings.
type SiteSettings struct {
	SiteName         string
	WorkdayStart     string // "09:00"
	WorkdayEnd       string // "17:00"
	LateAfterMinutes int
	AnnualLeaveDays  int
	Timezone         string // IANA zone ID, e.g. "America/New_York"
}

// DefaultSiteSettings returns the settings the process starts with.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:         DefaultSiteName,
		WorkdayStart:     "09:00",
		WorkdayEnd:       "17:00",
		LateAfterMinutes: 15,
		AnnualLeaveDays:  20,
		Timezone:         "UTC",
	}
}
