package hardware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
)

func allocWindow(start, end time.Time) openstack.AllocationEntry {
	const layout = "2006-01-02T15:04:05.000000"
	return openstack.AllocationEntry{
		StartDate: start.Format(layout),
		EndDate:   end.Format(layout),
	}
}

func TestNodes_FiltersByType(t *testing.T) {
	m := &openstack.MockClient{
		ListHostsFunc: func(context.Context) ([]openstack.Host, error) {
			return []openstack.Host{
				{ID: "1", NodeType: "compute_haswell", Reservable: true},
				{ID: "2", NodeType: "gpu_p100", Reservable: true},
			}, nil
		},
	}

	nodes, err := Nodes(context.Background(), m, NodeFilter{NodeType: "gpu_p100"})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "2", nodes[0].ID)
}

func TestNodes_UnknownTypeFails(t *testing.T) {
	m := &openstack.MockClient{
		ListHostsFunc: func(context.Context) ([]openstack.Host, error) {
			return []openstack.Host{{ID: "1", NodeType: "compute_haswell"}}, nil
		},
	}

	_, err := Nodes(context.Background(), m, NodeFilter{NodeType: "quantum"})
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestNodes_FilterReserved(t *testing.T) {
	now := time.Now().UTC()
	m := &openstack.MockClient{
		ListHostsFunc: func(context.Context) ([]openstack.Host, error) {
			return []openstack.Host{
				{ID: "free", NodeType: "compute_haswell", Reservable: true},
				{ID: "busy", NodeType: "compute_haswell", Reservable: true},
				{ID: "down", NodeType: "compute_haswell", Reservable: false},
			}, nil
		},
		ListHostAllocationsFunc: func(context.Context) ([]openstack.Allocation, error) {
			return []openstack.Allocation{
				{
					ResourceID: "busy",
					Reservations: []openstack.AllocationEntry{
						allocWindow(now.Add(-time.Hour), now.Add(time.Hour)),
					},
				},
			}, nil
		},
	}

	nodes, err := Nodes(context.Background(), m, NodeFilter{FilterReserved: true})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "free", nodes[0].ID)
}

func TestDevices_FiltersByMachineName(t *testing.T) {
	m := &openstack.MockClient{
		ListDevicesFunc: func(context.Context) ([]openstack.Device, error) {
			return []openstack.Device{
				{ID: "d1", MachineName: "raspberrypi4-64", Reservable: true},
				{ID: "d2", MachineName: "jetson-nano", Reservable: true},
			}, nil
		},
	}

	devices, err := Devices(context.Background(), m, DeviceFilter{MachineName: "jetson-nano"})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "d2", devices[0].ID)
}

func TestNextFreeTimeslot_NoAllocations(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	start, end, err := nextFreeTimeslot(&openstack.Allocation{}, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now, start)
	assert.True(t, end.IsZero())
}

func TestNextFreeTimeslot_GapBetweenReservations(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	alloc := &openstack.Allocation{
		ResourceID: "host-1",
		Reservations: []openstack.AllocationEntry{
			// Sorted check happens inside; give them out of order.
			allocWindow(now.Add(6*time.Hour), now.Add(8*time.Hour)),
			allocWindow(now, now.Add(2*time.Hour)),
		},
	}

	start, end, err := nextFreeTimeslot(alloc, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour), start)
	assert.Equal(t, now.Add(6*time.Hour), end)
}

func TestNextFreeTimeslot_NoGap(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	alloc := &openstack.Allocation{
		Reservations: []openstack.AllocationEntry{
			allocWindow(now, now.Add(4*time.Hour)),
			allocWindow(now.Add(4*time.Hour), now.Add(9*time.Hour)),
		},
	}

	start, end, err := nextFreeTimeslot(alloc, 2*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(9*time.Hour), start)
	assert.True(t, end.IsZero())
}
