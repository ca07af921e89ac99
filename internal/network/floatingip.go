// Package network holds orchestration helpers above the raw network gateway,
// shared by the server and container factories.
package network

import (
	"context"
	"fmt"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
)

// Association is the outcome of a floating-IP association. Created reports
// whether the address was newly allocated, so callers can limit teardown to
// what they actually created.
type Association struct {
	FloatingIP *openstack.FloatingIP
	PortID     string
	Created    bool
}

// AssociateFloatingIP gives the resource owning deviceID a public address.
// It reuses any unbound floating IP already held by the project and only
// allocates a new one when none is free, then binds the address to the
// resource's primary port.
func AssociateFloatingIP(ctx context.Context, gw openstack.NetworkService, deviceID string) (*Association, error) {
	fip, created, err := findOrAllocate(ctx, gw)
	if err != nil {
		return nil, err
	}

	port, err := primaryPort(ctx, gw, deviceID)
	if err != nil {
		if created {
			// Don't leak the address we just allocated.
			_ = gw.DeleteFloatingIP(ctx, fip.ID)
		}
		return nil, err
	}

	if err := gw.BindFloatingIP(ctx, fip.ID, port.ID); err != nil {
		if created {
			_ = gw.DeleteFloatingIP(ctx, fip.ID)
		}
		return nil, fmt.Errorf("failed to bind floating IP %s: %w", fip.FloatingIPAddress, err)
	}

	return &Association{FloatingIP: fip, PortID: port.ID, Created: created}, nil
}

func findOrAllocate(ctx context.Context, gw openstack.NetworkService) (*openstack.FloatingIP, bool, error) {
	fips, err := gw.ListFloatingIPs(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range fips {
		if fips[i].PortID == "" {
			return &fips[i], false, nil
		}
	}

	publicID, err := gw.PublicNetworkID(ctx)
	if err != nil {
		return nil, false, err
	}
	fip, err := gw.CreateFloatingIP(ctx, publicID)
	if err != nil {
		return nil, false, err
	}
	return fip, true, nil
}

func primaryPort(ctx context.Context, gw openstack.NetworkService, deviceID string) (*openstack.Port, error) {
	ports, err := gw.ListPorts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ports {
		if ports[i].DeviceID == deviceID {
			return &ports[i], nil
		}
	}
	return nil, errdefs.Resource(nil, "no port found for device %s", deviceID)
}
