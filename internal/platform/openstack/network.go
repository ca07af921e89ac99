package openstack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/imamik/trestle/internal/errdefs"
)

// publicNetworkName is the conventional name of the site's external network.
const publicNetworkName = "public"

type networkEnvelope struct {
	Network *Network `json:"network"`
}

type networksEnvelope struct {
	Networks []Network `json:"networks"`
}

// CreateNetwork creates a project network. When physicalNetwork is set the
// network is bound to that provider segment as a VLAN network.
func (c *RealClient) CreateNetwork(ctx context.Context, name, description, physicalNetwork string) (*Network, error) {
	net := map[string]any{
		"name":        name,
		"description": description,
	}
	if physicalNetwork != "" {
		net["provider:physical_network"] = physicalNetwork
		net["provider:network_type"] = "vlan"
	}

	var out networkEnvelope
	if err := c.do(ctx, serviceNetwork, http.MethodPost, "/v2.0/networks", map[string]any{"network": net}, &out); err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	return out.Network, nil
}

// GetNetwork fetches a network by ID.
func (c *RealClient) GetNetwork(ctx context.Context, id string) (*Network, error) {
	var out networkEnvelope
	if err := c.do(ctx, serviceNetwork, http.MethodGet, "/v2.0/networks/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.Network, nil
}

// ListNetworks lists networks visible to the project.
func (c *RealClient) ListNetworks(ctx context.Context) ([]Network, error) {
	var out networksEnvelope
	if err := c.do(ctx, serviceNetwork, http.MethodGet, "/v2.0/networks", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	return out.Networks, nil
}

// DeleteNetwork deletes a network by ID.
func (c *RealClient) DeleteNetwork(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceNetwork, http.MethodDelete, "/v2.0/networks/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete network %s: %w", id, err)
	}
	return nil
}

// PublicNetworkID resolves the ID of the site's external network.
func (c *RealClient) PublicNetworkID(ctx context.Context) (string, error) {
	var out networksEnvelope
	if err := c.do(ctx, serviceNetwork, http.MethodGet, "/v2.0/networks?name="+publicNetworkName, nil, &out); err != nil {
		return "", fmt.Errorf("failed to look up public network: %w", err)
	}
	for _, n := range out.Networks {
		if n.External {
			return n.ID, nil
		}
	}
	return "", errdefs.Resource(nil, "no external network named %q found", publicNetworkName)
}

// CreateSubnet creates a subnet on a network. An empty gatewayIP leaves
// gateway selection to the service.
func (c *RealClient) CreateSubnet(ctx context.Context, name, networkID, cidr, gatewayIP string) (*Subnet, error) {
	subnet := map[string]any{
		"name":       name,
		"network_id": networkID,
		"cidr":       cidr,
		"ip_version": 4,
	}
	if gatewayIP != "" {
		subnet["gateway_ip"] = gatewayIP
	}

	var out struct {
		Subnet *Subnet `json:"subnet"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodPost, "/v2.0/subnets", map[string]any{"subnet": subnet}, &out); err != nil {
		return nil, fmt.Errorf("failed to create subnet: %w", err)
	}
	return out.Subnet, nil
}

// ListSubnets lists subnets visible to the project.
func (c *RealClient) ListSubnets(ctx context.Context) ([]Subnet, error) {
	var out struct {
		Subnets []Subnet `json:"subnets"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodGet, "/v2.0/subnets", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}
	return out.Subnets, nil
}

// DeleteSubnet deletes a subnet by ID.
func (c *RealClient) DeleteSubnet(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceNetwork, http.MethodDelete, "/v2.0/subnets/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete subnet %s: %w", id, err)
	}
	return nil
}

// CreatePort creates a port on a network with the given fixed IPs.
func (c *RealClient) CreatePort(ctx context.Context, name, networkID string, fixedIPs []FixedIP) (*Port, error) {
	port := map[string]any{
		"name":       name,
		"network_id": networkID,
	}
	if len(fixedIPs) > 0 {
		port["fixed_ips"] = fixedIPs
	}

	var out struct {
		Port *Port `json:"port"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodPost, "/v2.0/ports", map[string]any{"port": port}, &out); err != nil {
		return nil, fmt.Errorf("failed to create port: %w", err)
	}
	return out.Port, nil
}

// ListPorts lists ports visible to the project.
func (c *RealClient) ListPorts(ctx context.Context) ([]Port, error) {
	var out struct {
		Ports []Port `json:"ports"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodGet, "/v2.0/ports", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}
	return out.Ports, nil
}

// DeletePort deletes a port by ID.
func (c *RealClient) DeletePort(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceNetwork, http.MethodDelete, "/v2.0/ports/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete port %s: %w", id, err)
	}
	return nil
}

// CreateRouter creates a router. When gatewayNetworkID is set the router
// uplinks to that external network.
func (c *RealClient) CreateRouter(ctx context.Context, name, gatewayNetworkID string) (*Router, error) {
	router := map[string]any{
		"name":           name,
		"admin_state_up": true,
	}
	if gatewayNetworkID != "" {
		router["external_gateway_info"] = GatewayInfo{NetworkID: gatewayNetworkID}
	}

	var out struct {
		Router *Router `json:"router"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodPost, "/v2.0/routers", map[string]any{"router": router}, &out); err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	return out.Router, nil
}

// ListRouters lists routers visible to the project.
func (c *RealClient) ListRouters(ctx context.Context) ([]Router, error) {
	var out struct {
		Routers []Router `json:"routers"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodGet, "/v2.0/routers", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list routers: %w", err)
	}
	return out.Routers, nil
}

// DeleteRouter deletes a router by ID.
func (c *RealClient) DeleteRouter(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceNetwork, http.MethodDelete, "/v2.0/routers/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete router %s: %w", id, err)
	}
	return nil
}

// AddRouterInterface attaches a subnet to a router.
func (c *RealClient) AddRouterInterface(ctx context.Context, routerID, subnetID string) error {
	body := map[string]string{"subnet_id": subnetID}
	if err := c.do(ctx, serviceNetwork, http.MethodPut, "/v2.0/routers/"+routerID+"/add_router_interface", body, nil); err != nil {
		return fmt.Errorf("failed to add interface to router %s: %w", routerID, err)
	}
	return nil
}

// RemoveRouterInterface detaches a subnet from a router.
func (c *RealClient) RemoveRouterInterface(ctx context.Context, routerID, subnetID string) error {
	body := map[string]string{"subnet_id": subnetID}
	if err := c.do(ctx, serviceNetwork, http.MethodPut, "/v2.0/routers/"+routerID+"/remove_router_interface", body, nil); err != nil {
		return fmt.Errorf("failed to remove interface from router %s: %w", routerID, err)
	}
	return nil
}

// ListFloatingIPs lists the project's floating IPs.
func (c *RealClient) ListFloatingIPs(ctx context.Context) ([]FloatingIP, error) {
	var out struct {
		FloatingIPs []FloatingIP `json:"floatingips"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodGet, "/v2.0/floatingips", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list floating IPs: %w", err)
	}
	return out.FloatingIPs, nil
}

// CreateFloatingIP allocates a floating IP from the given external network.
func (c *RealClient) CreateFloatingIP(ctx context.Context, floatingNetworkID string) (*FloatingIP, error) {
	body := map[string]any{
		"floatingip": map[string]string{"floating_network_id": floatingNetworkID},
	}
	var out struct {
		FloatingIP *FloatingIP `json:"floatingip"`
	}
	if err := c.do(ctx, serviceNetwork, http.MethodPost, "/v2.0/floatingips", body, &out); err != nil {
		return nil, fmt.Errorf("failed to allocate floating IP: %w", err)
	}
	return out.FloatingIP, nil
}

// DeleteFloatingIP releases a floating IP by ID.
func (c *RealClient) DeleteFloatingIP(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceNetwork, http.MethodDelete, "/v2.0/floatingips/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete floating IP %s: %w", id, err)
	}
	return nil
}

// BindFloatingIP attaches a floating IP to a port.
func (c *RealClient) BindFloatingIP(ctx context.Context, floatingIPID, portID string) error {
	body := map[string]any{
		"floatingip": map[string]string{"port_id": portID},
	}
	if err := c.do(ctx, serviceNetwork, http.MethodPut, "/v2.0/floatingips/"+floatingIPID, body, nil); err != nil {
		return fmt.Errorf("failed to bind floating IP %s: %w", floatingIPID, err)
	}
	return nil
}
