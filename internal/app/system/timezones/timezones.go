// internal/app/system/timezones/timezones.go
package timezones

import (
	"embed"
	"encoding/json"
	"sort"
	"sync"
	"time"

	// Zone data for hosts without a system zoneinfo database.
	_ "time/tzdata"
)

// DefaultID is used when a workplace has not picked a zone.
const DefaultID = "UTC"

//go:embed timezonedata/timezones.json
var FS embed.FS

type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

type ZoneGroup struct {
	Region string
	Zones  []Zone
}

var (
	loadOnce sync.Once
	zones    []Zone
	byID     map[string]Zone
	loadErr  error

	groupsOnce sync.Once
	groups     []ZoneGroup
	groupsErr  error

	locMu sync.Mutex
	locs  = map[string]*time.Location{}
)

func load() {
	loadOnce.Do(func() {
		data, err := FS.ReadFile("timezonedata/timezones.json")
		if err != nil {
			loadErr = err
			return
		}

		var list []Zone
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = err
			return
		}

		zones = list
		byID = make(map[string]Zone, len(list))
		for _, z := range list {
			byID[z.ID] = z
		}
	})
}

// Load parses the embedded list. Call it at startup to fail fast.
func Load() error {
	load()
	return loadErr
}

// All returns the curated list of zones in file order.
func All() ([]Zone, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	return zones, nil
}

// Label returns the display label for id, or id itself if unknown.
func Label(id string) string {
	load()
	if loadErr != nil {
		return id
	}
	if z, ok := byID[id]; ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Valid reports whether id is in the curated list.
func Valid(id string) bool {
	load()
	if loadErr != nil {
		return false
	}
	_, ok := byID[id]
	return ok
}

// Location returns the *time.Location for id. Unknown or unloadable ids
// fall back to UTC.
func Location(id string) *time.Location {
	if !Valid(id) {
		return time.UTC
	}

	locMu.Lock()
	defer locMu.Unlock()
	if loc, ok := locs[id]; ok {
		return loc
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		loc = time.UTC
	}
	locs[id] = loc
	return loc
}

func buildGroups() {
	groupsOnce.Do(func() {
		if err := Load(); err != nil {
			groupsErr = err
			return
		}

		byRegion := make(map[string][]Zone)
		for _, z := range zones {
			region := z.Region
			if region == "" {
				region = "Other"
			}
			byRegion[region] = append(byRegion[region], z)
		}

		out := make([]ZoneGroup, 0, len(byRegion))
		for region, zs := range byRegion {
			sort.SliceStable(zs, func(i, j int) bool {
				return zs[i].Label < zs[j].Label
			})
			out = append(out, ZoneGroup{Region: region, Zones: zs})
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Region < out[j].Region
		})

		groups = out
	})
}

// Groups returns the zones grouped by region, regions and labels sorted.
func Groups() ([]ZoneGroup, error) {
	buildGroups()
	if groupsErr != nil {
		return nil, groupsErr
	}
	return groups, nil
}
