package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/trestle/internal/network"
)

// NetworkCreateInput carries the network create command's arguments.
type NetworkCreateInput struct {
	Name            string
	Description     string
	PhysicalNetwork string
	CIDR            string
	Gateway         string
	Router          bool
}

// NetworkCreate materializes an isolated network, optionally with a subnet
// and a router uplinked to the public network.
func NetworkCreate(ctx context.Context, configPath string, in NetworkCreateInput) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	seg, err := network.CreateSegment(ctx, client, in.Name, network.SegmentOptions{
		Description:     in.Description,
		PhysicalNetwork: in.PhysicalNetwork,
		CIDR:            in.CIDR,
		GatewayIP:       in.Gateway,
		Router:          in.Router,
	})
	if err != nil {
		return fmt.Errorf("network creation failed: %w", err)
	}

	fmt.Printf("Network %s created (%s)\n", seg.Network.Name, seg.Network.ID)
	if seg.Subnet != nil {
		fmt.Printf("  Subnet: %s (%s)\n", seg.Subnet.CIDR, seg.Subnet.ID)
	}
	if seg.Router != nil {
		fmt.Printf("  Router: %s (%s)\n", seg.Router.Name, seg.Router.ID)
	}
	return nil
}

// NetworkList prints the networks visible to the project.
func NetworkList(ctx context.Context, configPath string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	networks, err := client.ListNetworks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}

	fmt.Print(renderNetworkTable(networks))
	return nil
}

// NetworkDelete tears down a network with its subnets and router.
func NetworkDelete(ctx context.Context, configPath, ref string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	if err := network.DeleteSegment(ctx, client, ref); err != nil {
		return fmt.Errorf("failed to delete network %s: %w", ref, err)
	}

	fmt.Printf("Network %s deleted\n", ref)
	return nil
}
