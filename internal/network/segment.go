package network

import (
	"context"
	"fmt"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/resolve"
)

// SegmentOptions configures CreateSegment.
type SegmentOptions struct {
	// Description carries the stitching metadata a network reservation
	// produced, so the materialized network matches the reserved segment.
	Description string

	// PhysicalNetwork binds the network to a provider segment as a VLAN
	// network when set.
	PhysicalNetwork string

	// CIDR, when set, creates an IPv4 subnet on the network. GatewayIP is
	// optional; empty leaves gateway selection to the service.
	CIDR      string
	GatewayIP string

	// Router uplinks the subnet to the site's public network through a
	// dedicated router. Requires CIDR.
	Router bool
}

// Segment is a materialized isolated network: the network itself plus the
// subnet and router created with it, when requested.
type Segment struct {
	Network *openstack.Network
	Subnet  *openstack.Subnet
	Router  *openstack.Router
}

// CreateSegment materializes an isolated network on top of a network
// reservation: the network, optionally a subnet, and optionally a router
// uplinked to the public network. Partial failures tear down what was
// already created so a half-built segment is never left behind.
func CreateSegment(ctx context.Context, gw openstack.NetworkService, name string, opts SegmentOptions) (*Segment, error) {
	if opts.Router && opts.CIDR == "" {
		return nil, errdefs.InvalidArgument("a router needs a subnet: set CIDR when Router is requested")
	}

	net, err := gw.CreateNetwork(ctx, name, opts.Description, opts.PhysicalNetwork)
	if err != nil {
		return nil, err
	}
	seg := &Segment{Network: net}

	if opts.CIDR == "" {
		return seg, nil
	}

	subnet, err := gw.CreateSubnet(ctx, name+"-subnet", net.ID, opts.CIDR, opts.GatewayIP)
	if err != nil {
		_ = gw.DeleteNetwork(ctx, net.ID)
		return nil, fmt.Errorf("failed to create subnet for network %s: %w", name, err)
	}
	seg.Subnet = subnet

	if !opts.Router {
		return seg, nil
	}

	publicID, err := gw.PublicNetworkID(ctx)
	if err != nil {
		teardown(ctx, gw, seg)
		return nil, err
	}
	router, err := gw.CreateRouter(ctx, routerName(name), publicID)
	if err != nil {
		teardown(ctx, gw, seg)
		return nil, fmt.Errorf("failed to create router for network %s: %w", name, err)
	}
	seg.Router = router

	if err := gw.AddRouterInterface(ctx, router.ID, subnet.ID); err != nil {
		_ = gw.DeleteRouter(ctx, router.ID)
		teardown(ctx, gw, seg)
		return nil, fmt.Errorf("failed to attach subnet to router %s: %w", router.Name, err)
	}

	return seg, nil
}

// DeleteSegment tears a segment down by network name or ID: router interface
// and router first, then subnets, then the network itself.
func DeleteSegment(ctx context.Context, gw openstack.NetworkService, ref string) error {
	net, err := resolve.ByRef(ctx, "network", ref,
		gw.GetNetwork,
		gw.ListNetworks,
		func(n *openstack.Network) string { return n.Name },
	)
	if err != nil {
		return err
	}

	subnets, err := segmentSubnets(ctx, gw, net.ID)
	if err != nil {
		return err
	}

	routers, err := gw.ListRouters(ctx)
	if err != nil {
		return err
	}
	for i := range routers {
		if routers[i].Name != routerName(net.Name) {
			continue
		}
		for _, s := range subnets {
			if err := gw.RemoveRouterInterface(ctx, routers[i].ID, s.ID); err != nil {
				return fmt.Errorf("failed to detach subnet %s: %w", s.Name, err)
			}
		}
		if err := gw.DeleteRouter(ctx, routers[i].ID); err != nil {
			return fmt.Errorf("failed to delete router %s: %w", routers[i].Name, err)
		}
	}

	for _, s := range subnets {
		if err := gw.DeleteSubnet(ctx, s.ID); err != nil {
			return fmt.Errorf("failed to delete subnet %s: %w", s.Name, err)
		}
	}

	return gw.DeleteNetwork(ctx, net.ID)
}

func segmentSubnets(ctx context.Context, gw openstack.NetworkService, networkID string) ([]openstack.Subnet, error) {
	all, err := gw.ListSubnets(ctx)
	if err != nil {
		return nil, err
	}
	var subnets []openstack.Subnet
	for _, s := range all {
		if s.NetworkID == networkID {
			subnets = append(subnets, s)
		}
	}
	return subnets, nil
}

// routerName is the naming convention tying a segment's router to its
// network, so teardown can find it again.
func routerName(networkName string) string {
	return networkName + "-router"
}

func teardown(ctx context.Context, gw openstack.NetworkService, seg *Segment) {
	if seg.Subnet != nil {
		_ = gw.DeleteSubnet(ctx, seg.Subnet.ID)
	}
	_ = gw.DeleteNetwork(ctx, seg.Network.ID)
}
