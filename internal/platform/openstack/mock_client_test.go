package openstack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMockClient_InterfaceCompliance verifies MockClient implements Client.
func TestMockClient_InterfaceCompliance(_ *testing.T) {
	var _ Client = (*MockClient)(nil)
}

func TestMockClient_CreateLease_Default(t *testing.T) {
	m := &MockClient{}

	lease, err := m.CreateLease(context.Background(), LeaseCreateRequest{
		Name: "my-lease",
		Reservations: []ReservationRequest{
			{ResourceType: ResourceTypeNode, Min: 1, Max: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "mock-lease-id", lease.ID)
	assert.Equal(t, "PENDING", lease.Status)
	require.Len(t, lease.Reservations, 1)
	assert.Equal(t, ResourceTypeNode, lease.Reservations[0].ResourceType)
}

func TestMockClient_CreateLease_CustomFunc(t *testing.T) {
	expectedErr := errors.New("custom error")
	m := &MockClient{
		CreateLeaseFunc: func(_ context.Context, req LeaseCreateRequest) (*Lease, error) {
			assert.Equal(t, "my-lease", req.Name)
			return nil, expectedErr
		},
	}

	_, err := m.CreateLease(context.Background(), LeaseCreateRequest{Name: "my-lease"})
	assert.ErrorIs(t, err, expectedErr)
}

func TestMockClient_GetServer_Default(t *testing.T) {
	m := &MockClient{}

	srv, err := m.GetServer(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", srv.ID)
	assert.Equal(t, "ACTIVE", srv.Status)
}

func TestMockClient_PublicNetworkID_Default(t *testing.T) {
	m := &MockClient{}

	id, err := m.PublicNetworkID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mock-public-network-id", id)
}
