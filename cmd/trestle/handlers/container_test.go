package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/trestle/internal/platform/openstack"
)

func activeLeaseWithDevice(id string) *openstack.Lease {
	return &openstack.Lease{
		ID:     id,
		Name:   "edge-lease",
		Status: "ACTIVE",
		Reservations: []openstack.ReservationRecord{
			{ID: "res-dev-1", ResourceType: openstack.ResourceTypeDevice},
		},
	}
}

func TestContainerCreate_ThreadsReservationID(t *testing.T) {
	var (
		captured openstack.ContainerCreateRequest
		started  bool
	)
	mock := &openstack.MockClient{
		GetLeaseFunc: func(_ context.Context, id string) (*openstack.Lease, error) {
			return activeLeaseWithDevice(id), nil
		},
		CreateContainerFunc: func(_ context.Context, req openstack.ContainerCreateRequest) (*openstack.Container, error) {
			captured = req
			return &openstack.Container{UUID: "c-1", Name: req.Name, Status: "Created"}, nil
		},
		StartContainerFunc: func(_ context.Context, _ string) error {
			started = true
			return nil
		},
		GetContainerFunc: func(_ context.Context, ref string) (*openstack.Container, error) {
			status := "Created"
			if started {
				status = "Running"
			}
			return &openstack.Container{UUID: ref, Status: status}, nil
		},
	}
	withTestDeps(t, mock)

	err := ContainerCreate(context.Background(), "", ContainerCreateInput{
		Name:         "web",
		Lease:        "lease-1",
		Image:        "nginx:alpine",
		ExposedPorts: []string{"80/tcp"},
	})
	require.NoError(t, err)

	assert.Equal(t, "res-dev-1", captured.Hints["reservation"])
	assert.Equal(t, "nginx:alpine", captured.Image)
	assert.Contains(t, captured.ExposedPorts, "80/tcp")
	assert.True(t, started)
}

func TestContainerCreate_NoDeviceReservation(t *testing.T) {
	mock := &openstack.MockClient{
		GetLeaseFunc: func(_ context.Context, id string) (*openstack.Lease, error) {
			return &openstack.Lease{ID: id, Name: "edge-lease", Status: "ACTIVE"}, nil
		},
	}
	withTestDeps(t, mock)

	err := ContainerCreate(context.Background(), "", ContainerCreateInput{
		Name:  "web",
		Lease: "lease-1",
		Image: "nginx:alpine",
	})
	require.Error(t, err)
}

func TestContainerDelete_StopsFirst(t *testing.T) {
	var stopped bool
	mock := &openstack.MockClient{
		DeleteContainerFunc: func(_ context.Context, _ string, stop bool) error {
			stopped = stop
			return nil
		},
	}
	withTestDeps(t, mock)

	require.NoError(t, ContainerDelete(context.Background(), "", "c-1"))
	assert.True(t, stopped)
}

func TestContainerExec_NonZeroExit(t *testing.T) {
	mock := &openstack.MockClient{
		ExecuteFunc: func(_ context.Context, _, _ string) (*openstack.ExecResult, error) {
			return &openstack.ExecResult{Output: "boom\n", ExitCode: 2}, nil
		},
	}
	withTestDeps(t, mock)

	err := ContainerExec(context.Background(), "", "c-1", "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with code 2")
}
