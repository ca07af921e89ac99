// Package hardware discovers reservable nodes and edge devices and computes
// free timeslots from the scheduler's allocation windows.
package hardware

import (
	"context"
	"sort"
	"time"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/util/async"
)

// allocTimeFormats are the timestamp layouts the scheduler emits in
// allocation windows, tried in order.
var allocTimeFormats = []string{
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// NodeFilter narrows Nodes results.
type NodeFilter struct {
	// NodeType keeps only nodes of this hardware class.
	NodeType string

	// FilterReserved drops nodes that are reserved right now or not
	// reservable at all.
	FilterReserved bool
}

// DeviceFilter narrows Devices results.
type DeviceFilter struct {
	// MachineName keeps only devices of this class.
	MachineName string

	// FilterReserved drops devices that are reserved right now or not
	// reservable at all.
	FilterReserved bool
}

// Nodes lists the site's bare-metal nodes. The host catalogue and the
// allocation list are independent reads, fetched in parallel before merging.
func Nodes(ctx context.Context, svc openstack.ReservationService, filter NodeFilter) ([]openstack.Host, error) {
	var (
		hosts       []openstack.Host
		allocations []openstack.Allocation
	)

	err := async.RunParallel(ctx, []async.Task{
		{Name: "list hosts", Func: func(ctx context.Context) error {
			var err error
			hosts, err = svc.ListHosts(ctx)
			return err
		}},
		{Name: "list host allocations", Func: func(ctx context.Context) error {
			if !filter.FilterReserved {
				return nil
			}
			var err error
			allocations, err = svc.ListHostAllocations(ctx)
			return err
		}},
	})
	if err != nil {
		return nil, err
	}

	reservedNow := reservedResourceIDs(allocations, time.Now().UTC())

	var (
		out       []openstack.Host
		nodeTypes = map[string]bool{}
	)
	for _, h := range hosts {
		nodeTypes[h.NodeType] = true
		if filter.NodeType != "" && h.NodeType != filter.NodeType {
			continue
		}
		if filter.FilterReserved && (!h.Reservable || reservedNow[h.ID]) {
			continue
		}
		out = append(out, h)
	}

	if filter.NodeType != "" && !nodeTypes[filter.NodeType] {
		return nil, errdefs.InvalidArgument("unknown node type %q", filter.NodeType)
	}
	return out, nil
}

// Devices lists the site's edge devices, with the same parallel
// catalogue/allocation merge as Nodes.
func Devices(ctx context.Context, svc openstack.ReservationService, filter DeviceFilter) ([]openstack.Device, error) {
	var (
		devices     []openstack.Device
		allocations []openstack.Allocation
	)

	err := async.RunParallel(ctx, []async.Task{
		{Name: "list devices", Func: func(ctx context.Context) error {
			var err error
			devices, err = svc.ListDevices(ctx)
			return err
		}},
		{Name: "list device allocations", Func: func(ctx context.Context) error {
			if !filter.FilterReserved {
				return nil
			}
			var err error
			allocations, err = svc.ListDeviceAllocations(ctx)
			return err
		}},
	})
	if err != nil {
		return nil, err
	}

	reservedNow := reservedResourceIDs(allocations, time.Now().UTC())

	var out []openstack.Device
	for _, d := range devices {
		if filter.MachineName != "" && d.MachineName != filter.MachineName {
			continue
		}
		if filter.FilterReserved && (!d.Reservable || reservedNow[d.ID]) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// NextFreeTimeslot finds the next window of at least minimum duration in
// which the host is unallocated. A zero end time means the slot is
// open-ended.
func NextFreeTimeslot(ctx context.Context, svc openstack.ReservationService, hostID string, minimum time.Duration) (start, end time.Time, err error) {
	alloc, err := svc.GetHostAllocation(ctx, hostID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return nextFreeTimeslot(alloc, minimum, time.Now().UTC())
}

func nextFreeTimeslot(alloc *openstack.Allocation, minimum time.Duration, now time.Time) (time.Time, time.Time, error) {
	if alloc == nil || len(alloc.Reservations) == 0 {
		return now, time.Time{}, nil
	}

	windows := make([]openstack.AllocationEntry, len(alloc.Reservations))
	copy(windows, alloc.Reservations)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].StartDate < windows[j].StartDate
	})

	possibleStart := now
	for _, w := range windows {
		thisStart, err := parseAllocTime(w.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if possibleStart.Add(minimum).Before(thisStart) {
			return possibleStart, thisStart, nil
		}
		thisEnd, err := parseAllocTime(w.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if thisEnd.After(possibleStart) {
			possibleStart = thisEnd
		}
	}
	return possibleStart, time.Time{}, nil
}

func reservedResourceIDs(allocations []openstack.Allocation, now time.Time) map[string]bool {
	reserved := make(map[string]bool)
	for _, alloc := range allocations {
		for _, w := range alloc.Reservations {
			start, err := parseAllocTime(w.StartDate)
			if err != nil {
				continue
			}
			end, err := parseAllocTime(w.EndDate)
			if err != nil {
				continue
			}
			if start.Before(now) && now.Before(end) {
				reserved[alloc.ResourceID] = true
			}
		}
	}
	return reserved
}

func parseAllocTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range allocTimeFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, errdefs.Service(lastErr, "unparseable allocation timestamp %q", s)
}
