package reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
)

// Usage types accepted for network reservations.
const (
	UsageTypeStorage = "storage"
)

// Stitch providers accepted for network reservations.
const (
	StitchProviderFabric = "fabric"
)

// DefaultPhysicalNetwork is the provider segment used when none is given.
const DefaultPhysicalNetwork = "physnet1"

// NodeOptions are the optional parameters of a node reservation.
type NodeOptions struct {
	// ResourceProperties is a caller-supplied constraint tree, combined
	// with derived constraints under AND.
	ResourceProperties Constraint

	// NodeType filters by hardware class (e.g. "compute_haswell").
	NodeType string

	// Architecture filters by platform architecture.
	Architecture string

	// NodeName pins the reservation to one named node. Exclusive with
	// every other filter and with count != 1.
	NodeName string
}

// Node builds a bare-metal host reservation.
func Node(count int, opts NodeOptions) (openstack.ReservationRequest, error) {
	if count < 1 {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument("node count must be at least 1, got %d", count)
	}
	if opts.NodeName != "" {
		if count != 1 || opts.ResourceProperties != nil || opts.NodeType != "" || opts.Architecture != "" {
			return openstack.ReservationRequest{}, errdefs.InvalidArgument(
				"a node name pins exactly one node and cannot be combined with count, properties, type, or architecture filters")
		}
	}

	var derived []Constraint
	if opts.NodeType != "" {
		derived = append(derived, Eq("$node_type", opts.NodeType))
	}
	if opts.Architecture != "" {
		derived = append(derived, Eq("$architecture.platform_type", opts.Architecture))
	}
	if opts.NodeName != "" {
		derived = append(derived, Eq("$node_name", opts.NodeName))
	}

	props, err := combine(opts.ResourceProperties, derived...).Encode()
	if err != nil {
		return openstack.ReservationRequest{}, err
	}

	return openstack.ReservationRequest{
		ResourceType:       openstack.ResourceTypeNode,
		Min:                count,
		Max:                count,
		ResourceProperties: props,
	}, nil
}

// NetworkOptions are the optional parameters of a network reservation.
type NetworkOptions struct {
	// UsageType marks the network's intended use; only "storage" (or
	// empty) is accepted.
	UsageType string

	// StitchProvider requests an externally stitchable segment; only
	// "fabric" (or empty) is accepted.
	StitchProvider string

	// PhysicalNetwork is the provider segment; defaults to physnet1.
	PhysicalNetwork string

	// ResourceProperties overrides the derived constraint tree entirely.
	ResourceProperties Constraint

	// OFControllerIP and OFControllerPort describe an OpenFlow controller
	// reachable from the testbed. Both must be set for the descriptor to
	// be included.
	OFControllerIP   string
	OFControllerPort string

	// VSwitchName names the virtual switch for additional private VLANs.
	VSwitchName string
}

// Network builds an isolated VLAN segment reservation. The network
// description carries controller and vswitch descriptors the segment
// provisioner parses out-of-band.
func Network(networkName string, opts NetworkOptions) (openstack.ReservationRequest, error) {
	if networkName == "" {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument("network name is required")
	}
	if opts.UsageType != "" && opts.UsageType != UsageTypeStorage {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument(
			"invalid usage type %q, only %q is supported", opts.UsageType, UsageTypeStorage)
	}
	if opts.StitchProvider != "" && opts.StitchProvider != StitchProviderFabric {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument(
			"invalid stitch provider %q, only %q is supported", opts.StitchProvider, StitchProviderFabric)
	}

	physical := opts.PhysicalNetwork
	if physical == "" {
		physical = DefaultPhysicalNetwork
	}

	props := opts.ResourceProperties
	if props == nil {
		if opts.StitchProvider != "" {
			props = Eq("$stitch_provider", opts.StitchProvider)
		} else {
			props = Eq("$physical_network", physical)
		}
		if opts.UsageType != "" {
			props = And(props, Eq("$usage_type", opts.UsageType))
		}
	}
	encoded, err := props.Encode()
	if err != nil {
		return openstack.ReservationRequest{}, err
	}

	var descParts []string
	if opts.OFControllerIP != "" && opts.OFControllerPort != "" {
		descParts = append(descParts, fmt.Sprintf("OFController=%s:%s", opts.OFControllerIP, opts.OFControllerPort))
	}
	if opts.VSwitchName != "" {
		descParts = append(descParts, fmt.Sprintf("VSwitchName=%s", opts.VSwitchName))
	}

	return openstack.ReservationRequest{
		ResourceType:       openstack.ResourceTypeNetwork,
		NetworkName:        networkName,
		NetworkDescription: strings.Join(descParts, ","),
		ResourceProperties: encoded,
	}, nil
}

// PublicNetworkResolver resolves the site's external network ID.
type PublicNetworkResolver interface {
	PublicNetworkID(ctx context.Context) (string, error)
}

// FloatingIP builds a floating-IP reservation. The public network ID is
// resolved live at build time, so this builder needs the network gateway.
func FloatingIP(ctx context.Context, networks PublicNetworkResolver, count int) (openstack.ReservationRequest, error) {
	if count < 1 {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument("floating IP count must be at least 1, got %d", count)
	}
	networkID, err := networks.PublicNetworkID(ctx)
	if err != nil {
		return openstack.ReservationRequest{}, fmt.Errorf("failed to resolve public network: %w", err)
	}
	return openstack.ReservationRequest{
		ResourceType: openstack.ResourceTypeFloatingIP,
		NetworkID:    networkID,
		Amount:       count,
	}, nil
}

// DeviceOptions are the optional parameters of an edge-device reservation.
type DeviceOptions struct {
	// MachineName filters by device class (e.g. "raspberrypi4-64").
	MachineName string

	// DeviceModel filters by hardware model.
	DeviceModel string

	// DeviceName pins the reservation to one named device. Exclusive with
	// count > 1.
	DeviceName string
}

// Device builds an edge-device reservation.
func Device(count int, opts DeviceOptions) (openstack.ReservationRequest, error) {
	if count < 1 {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument("device count must be at least 1, got %d", count)
	}
	if opts.DeviceName != "" && count > 1 {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument(
			"a device name pins exactly one device and cannot be combined with count > 1")
	}

	var derived []Constraint
	if opts.MachineName != "" {
		derived = append(derived, Eq("$machine_name", opts.MachineName))
	}
	if opts.DeviceModel != "" {
		derived = append(derived, Eq("$model", opts.DeviceModel))
	}
	if opts.DeviceName != "" {
		derived = append(derived, Eq("$name", opts.DeviceName))
	}

	props, err := combine(nil, derived...).Encode()
	if err != nil {
		return openstack.ReservationRequest{}, err
	}

	return openstack.ReservationRequest{
		ResourceType:       openstack.ResourceTypeDevice,
		Min:                count,
		Max:                count,
		ResourceProperties: props,
	}, nil
}

// FlavorOptions are the optional parameters of a flavor reservation.
type FlavorOptions struct {
	// Affinity controls instance placement relative to other instances of
	// the same reservation.
	Affinity string
}

// Flavor builds a virtual-instance flavor reservation.
func Flavor(flavorID string, count int, opts FlavorOptions) (openstack.ReservationRequest, error) {
	if flavorID == "" {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument("flavor ID is required")
	}
	if count < 1 {
		return openstack.ReservationRequest{}, errdefs.InvalidArgument("flavor count must be at least 1, got %d", count)
	}
	return openstack.ReservationRequest{
		ResourceType: openstack.ResourceTypeFlavor,
		FlavorID:     flavorID,
		Amount:       count,
		Affinity:     opts.Affinity,
	}, nil
}
