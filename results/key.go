package results

import (
	"time"

	"github.com/google/uuid"
)

const keyTimeLayout = "2006-01-02T15:04:05"

// NewSolutionKey returns a unique, time-ordered solution key.
func NewSolutionKey(now time.Time) string {
	return now.UTC().Format(keyTimeLayout) + "_" + uuid.NewString()
}

// SolutionTime parses the timestamp prefix of a key created by NewSolutionKey.
func SolutionTime(key string) (time.Time, bool) {
	if len(key) < len(keyTimeLayout)+1 || key[len(keyTimeLayout)] != '_' {
		return time.Time{}, false
	}
	t, err := time.Parse(keyTimeLayout, key[:len(keyTimeLayout)])
	if err != nil {
		return time.Time{}, false
	}
	if _, err := uuid.Parse(key[len(keyTimeLayout)+1:]); err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PathBlob returns the name of the predecessor map blob.
func PathBlob(key string) string { return "path-" + key + ".json" }

// VisitedBlob returns the name of the visited edges blob.
func VisitedBlob(key string) string { return "visited-" + key + ".json" }

// ActiveBlob returns the name of the active edges blob.
func ActiveBlob(key string) string { return "active-" + key + ".json" }

// RouteBlob returns the name of the GeoJSON route blob.
func RouteBlob(key string) string { return "route-" + key + ".geojson" }
