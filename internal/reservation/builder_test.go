package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
)

func TestNode_NodeTypeOnly(t *testing.T) {
	req, err := Node(1, NodeOptions{NodeType: "compute_haswell"})
	require.NoError(t, err)

	assert.Equal(t, openstack.ResourceTypeNode, req.ResourceType)
	assert.Equal(t, 1, req.Min)
	assert.Equal(t, 1, req.Max)
	assert.Equal(t, `["==","$node_type","compute_haswell"]`, req.ResourceProperties)
}

func TestNode_NoConstraints(t *testing.T) {
	req, err := Node(3, NodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, req.Min)
	assert.Equal(t, 3, req.Max)
	assert.Empty(t, req.ResourceProperties)
}

func TestNode_CombinedConstraints(t *testing.T) {
	req, err := Node(1, NodeOptions{
		ResourceProperties: Eq("$storage_devices.count", "4"),
		NodeType:           "storage",
		Architecture:       "x86_64",
	})
	require.NoError(t, err)

	assert.Equal(t,
		`["and",["==","$storage_devices.count","4"],["==","$node_type","storage"],["==","$architecture.platform_type","x86_64"]]`,
		req.ResourceProperties)
}

func TestNode_NodeName(t *testing.T) {
	req, err := Node(1, NodeOptions{NodeName: "c01-07"})
	require.NoError(t, err)
	assert.Equal(t, `["==","$node_name","c01-07"]`, req.ResourceProperties)
}

func TestNode_NodeNameExclusivity(t *testing.T) {
	tests := []struct {
		name  string
		count int
		opts  NodeOptions
	}{
		{"with count", 2, NodeOptions{NodeName: "c01-07"}},
		{"with properties", 1, NodeOptions{NodeName: "c01-07", ResourceProperties: Eq("$node_type", "x")}},
		{"with node type", 1, NodeOptions{NodeName: "c01-07", NodeType: "compute_haswell"}},
		{"with architecture", 1, NodeOptions{NodeName: "c01-07", Architecture: "x86_64"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Node(tt.count, tt.opts)
			assert.True(t, errdefs.IsInvalidArgument(err))
		})
	}
}

func TestNode_InvalidCount(t *testing.T) {
	_, err := Node(0, NodeOptions{})
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestNetwork_Defaults(t *testing.T) {
	req, err := Network("myLeaseNetwork", NetworkOptions{})
	require.NoError(t, err)

	assert.Equal(t, openstack.ResourceTypeNetwork, req.ResourceType)
	assert.Equal(t, "myLeaseNetwork", req.NetworkName)
	assert.Empty(t, req.NetworkDescription)
	assert.Equal(t, `["==","$physical_network","physnet1"]`, req.ResourceProperties)
}

func TestNetwork_Description(t *testing.T) {
	req, err := Network("ofnet", NetworkOptions{
		OFControllerIP:   "192.0.2.5",
		OFControllerPort: "6653",
		VSwitchName:      "sw1",
	})
	require.NoError(t, err)
	assert.Equal(t, "OFController=192.0.2.5:6653,VSwitchName=sw1", req.NetworkDescription)
}

func TestNetwork_ControllerNeedsBothParts(t *testing.T) {
	req, err := Network("ofnet", NetworkOptions{OFControllerIP: "192.0.2.5"})
	require.NoError(t, err)
	assert.Empty(t, req.NetworkDescription)
}

func TestNetwork_StitchProvider(t *testing.T) {
	req, err := Network("stitched", NetworkOptions{StitchProvider: StitchProviderFabric})
	require.NoError(t, err)
	assert.Equal(t, `["==","$stitch_provider","fabric"]`, req.ResourceProperties)
}

func TestNetwork_InvalidEnums(t *testing.T) {
	_, err := Network("n", NetworkOptions{UsageType: "compute"})
	assert.True(t, errdefs.IsInvalidArgument(err))

	_, err = Network("n", NetworkOptions{StitchProvider: "exogeni"})
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestFloatingIP(t *testing.T) {
	m := &openstack.MockClient{
		PublicNetworkIDFunc: func(context.Context) (string, error) {
			return "public-net-id", nil
		},
	}

	req, err := FloatingIP(context.Background(), m, 2)
	require.NoError(t, err)
	assert.Equal(t, openstack.ResourceTypeFloatingIP, req.ResourceType)
	assert.Equal(t, "public-net-id", req.NetworkID)
	assert.Equal(t, 2, req.Amount)
}

func TestFloatingIP_LookupFailure(t *testing.T) {
	m := &openstack.MockClient{
		PublicNetworkIDFunc: func(context.Context) (string, error) {
			return "", errors.New("network service unreachable")
		},
	}

	_, err := FloatingIP(context.Background(), m, 1)
	assert.Error(t, err)
}

func TestDevice(t *testing.T) {
	req, err := Device(2, DeviceOptions{MachineName: "raspberrypi4-64"})
	require.NoError(t, err)
	assert.Equal(t, openstack.ResourceTypeDevice, req.ResourceType)
	assert.Equal(t, 2, req.Min)
	assert.Equal(t, `["==","$machine_name","raspberrypi4-64"]`, req.ResourceProperties)
}

func TestDevice_NameExclusivity(t *testing.T) {
	_, err := Device(2, DeviceOptions{DeviceName: "edge-07"})
	assert.True(t, errdefs.IsInvalidArgument(err))

	req, err := Device(1, DeviceOptions{DeviceName: "edge-07"})
	require.NoError(t, err)
	assert.Equal(t, `["==","$name","edge-07"]`, req.ResourceProperties)
}

func TestFlavor(t *testing.T) {
	req, err := Flavor("flv-1", 3, FlavorOptions{Affinity: "anti-affinity"})
	require.NoError(t, err)
	assert.Equal(t, openstack.ResourceTypeFlavor, req.ResourceType)
	assert.Equal(t, "flv-1", req.FlavorID)
	assert.Equal(t, 3, req.Amount)
	assert.Equal(t, "anti-affinity", req.Affinity)

	_, err = Flavor("", 1, FlavorOptions{})
	assert.True(t, errdefs.IsInvalidArgument(err))
}
