package reservation

import (
	"time"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
)

// TimeFormat is the wire timestamp format of the reservation service: minute
// resolution, no timezone suffix. Callers pass UTC times.
const TimeFormat = "2006-01-02 15:04"

// startBuffer is how far past "now" an immediate lease is scheduled to
// start. The service rounds timestamps to the minute and rejects leases
// that start in the past; the buffer keeps a rounded start ahead of the
// service's clock.
const startBuffer = 70 * time.Second

// DefaultLeaseLength is used when neither an end time nor a length is given.
const DefaultLeaseLength = 24 * time.Hour

// LeaseWindow bounds a lease in time. A zero Start means "as soon as
// possible". At most one of End and Length may be set; with neither, the
// lease runs for DefaultLeaseLength.
type LeaseWindow struct {
	Start  time.Time
	End    time.Time
	Length time.Duration

	// now is a test seam; defaults to time.Now.
	now func() time.Time
}

func (w LeaseWindow) clock() time.Time {
	if w.now != nil {
		return w.now().UTC()
	}
	return time.Now().UTC()
}

// LeaseCreateArgs merges a reservation list and a time window into the exact
// lease-create payload the reservation service expects.
func LeaseCreateArgs(name string, window LeaseWindow, reservations []openstack.ReservationRequest) (openstack.LeaseCreateRequest, error) {
	if name == "" {
		return openstack.LeaseCreateRequest{}, errdefs.InvalidArgument("lease name is required")
	}
	if !window.End.IsZero() && window.Length != 0 {
		return openstack.LeaseCreateRequest{}, errdefs.InvalidArgument("provide either a length or an end time, not both")
	}

	// The length is anchored at the requested start, not the buffered one,
	// so a one-day lease starting "now" ends one day from now.
	base := window.Start
	start := window.Start
	if start.IsZero() {
		base = window.clock()
		start = base.Add(startBuffer)
	}

	end := window.End
	if end.IsZero() {
		length := window.Length
		if length == 0 {
			length = DefaultLeaseLength
		}
		end = base.Add(length)
	}

	if reservations == nil {
		reservations = []openstack.ReservationRequest{}
	}

	return openstack.LeaseCreateRequest{
		Name:         name,
		Start:        start.UTC().Format(TimeFormat),
		End:          end.UTC().Format(TimeFormat),
		Reservations: reservations,
		Events:       []map[string]any{},
	}, nil
}
