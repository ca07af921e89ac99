package openstack

import (
	"strings"

	"github.com/imamik/trestle/internal/errdefs"
)

// capacityMarkers are substrings the reservation service uses to reject a
// lease that cannot be satisfied in the requested window.
var capacityMarkers = []string{
	"not enough resources available",
	"not enough hosts available",
	"no hosts available",
}

// IsCapacityError reports whether err is a reservation rejection caused by
// insufficient free capacity rather than a malformed request.
func IsCapacityError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range capacityMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// AnnotateCapacity rewraps a capacity rejection with the resource types the
// lease asked for, so the caller sees which request could not be placed.
// Other errors pass through unchanged.
func AnnotateCapacity(err error, reservations []ReservationRequest) error {
	if !IsCapacityError(err) {
		return err
	}
	types := make([]string, 0, len(reservations))
	seen := make(map[string]bool)
	for _, r := range reservations {
		if !seen[r.ResourceType] {
			seen[r.ResourceType] = true
			types = append(types, r.ResourceType)
		}
	}
	return errdefs.Resource(err, "not enough free capacity for requested resources (%s)", strings.Join(types, ", "))
}
