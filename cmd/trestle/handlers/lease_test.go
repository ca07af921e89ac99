package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/trestle/internal/platform/openstack"
)

func TestLeaseCreate_NodeReservation(t *testing.T) {
	var captured openstack.LeaseCreateRequest
	mock := &openstack.MockClient{
		CreateLeaseFunc: func(_ context.Context, req openstack.LeaseCreateRequest) (*openstack.Lease, error) {
			captured = req
			return &openstack.Lease{ID: "lease-1", Name: req.Name, Status: "PENDING"}, nil
		},
	}
	withTestDeps(t, mock)

	err := LeaseCreate(context.Background(), "", LeaseCreateInput{
		Name:     "my-lease",
		Nodes:    2,
		NodeType: "compute_haswell",
		Duration: 24 * time.Hour,
	})
	require.NoError(t, err)

	require.Len(t, captured.Reservations, 1)
	res := captured.Reservations[0]
	assert.Equal(t, openstack.ResourceTypeNode, res.ResourceType)
	assert.Equal(t, 2, res.Min)
	assert.Equal(t, 2, res.Max)
	assert.Contains(t, res.ResourceProperties, "compute_haswell")
}

func TestLeaseCreate_NothingToReserve(t *testing.T) {
	withTestDeps(t, &openstack.MockClient{})

	err := LeaseCreate(context.Background(), "", LeaseCreateInput{
		Name:     "my-lease",
		Duration: time.Hour,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to reserve")
}

func TestLeaseList(t *testing.T) {
	mock := &openstack.MockClient{
		ListLeasesFunc: func(_ context.Context) ([]openstack.Lease, error) {
			return []openstack.Lease{
				{ID: "lease-1", Name: "a", Status: "ACTIVE"},
				{ID: "lease-2", Name: "b", Status: "PENDING"},
			}, nil
		},
	}
	withTestDeps(t, mock)

	require.NoError(t, LeaseList(context.Background(), ""))
}

func TestLeaseProlong(t *testing.T) {
	var capturedFor string
	mock := &openstack.MockClient{
		GetLeaseFunc: func(_ context.Context, id string) (*openstack.Lease, error) {
			return &openstack.Lease{ID: id, Name: "my-lease", Status: "ACTIVE"}, nil
		},
		UpdateLeaseFunc: func(_ context.Context, id, name, prolongFor string) (*openstack.Lease, error) {
			capturedFor = prolongFor
			return &openstack.Lease{ID: id, Name: name, Status: "ACTIVE"}, nil
		},
	}
	withTestDeps(t, mock)

	require.NoError(t, LeaseProlong(context.Background(), "", "lease-1", 2*time.Hour))
	assert.Equal(t, "120m", capturedFor)
}

func TestLeaseDelete(t *testing.T) {
	var deleted string
	mock := &openstack.MockClient{
		GetLeaseFunc: func(_ context.Context, id string) (*openstack.Lease, error) {
			return &openstack.Lease{ID: id, Name: "my-lease", Status: "ACTIVE"}, nil
		},
		DeleteLeaseFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	withTestDeps(t, mock)

	require.NoError(t, LeaseDelete(context.Background(), "", "lease-1"))
	assert.Equal(t, "lease-1", deleted)
}

func TestLeaseWait_ReachesActive(t *testing.T) {
	mock := &openstack.MockClient{
		GetLeaseFunc: func(_ context.Context, id string) (*openstack.Lease, error) {
			return &openstack.Lease{ID: id, Name: "my-lease", Status: "ACTIVE"}, nil
		},
	}
	withTestDeps(t, mock)

	require.NoError(t, LeaseWait(context.Background(), "", "lease-1", 0))
}
