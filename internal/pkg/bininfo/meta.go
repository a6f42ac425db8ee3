// Package bininfo holds build metadata injected through -ldflags, e.g.
//
//	-X github.com/tripmates/itinerary-backend/internal/pkg/bininfo.Version=v1.2.0
package bininfo

var (
	// Version is the SemVer version of the binary.
	Version = "v0.0.0"

	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"

	// BuildTime is the time at which the application was built.
	BuildTime = "1970-01-01T00:00:00Z"
)

// Release is the release name reported to error tracking.
func Release() string {
	return "itinerary-backend@" + Version
}
