package openstack

import (
	"context"
)

// ReservationService is the gateway to the scheduling/reservation service.
type ReservationService interface {
	// CreateLease submits a lease-create payload and returns the remote
	// representation with assigned identity.
	CreateLease(ctx context.Context, req LeaseCreateRequest) (*Lease, error)
	GetLease(ctx context.Context, id string) (*Lease, error)
	UpdateLease(ctx context.Context, id string, name string, prolongFor string) (*Lease, error)
	DeleteLease(ctx context.Context, id string) error
	ListLeases(ctx context.Context) ([]Lease, error)

	ListHosts(ctx context.Context) ([]Host, error)
	ListHostAllocations(ctx context.Context) ([]Allocation, error)
	GetHostAllocation(ctx context.Context, hostID string) (*Allocation, error)
	ListDevices(ctx context.Context) ([]Device, error)
	ListDeviceAllocations(ctx context.Context) ([]Allocation, error)
}

// ComputeService is the gateway to the compute service.
type ComputeService interface {
	CreateServer(ctx context.Context, req ServerCreateRequest) (*Server, error)
	GetServer(ctx context.Context, id string) (*Server, error)
	ListServers(ctx context.Context) ([]Server, error)
	DeleteServer(ctx context.Context, id string) error
	// AddFloatingIP binds an already-allocated floating IP address to the
	// server's primary NIC.
	AddFloatingIP(ctx context.Context, serverID, address string) error
	ListFlavors(ctx context.Context) ([]Flavor, error)

	CreateKeyPair(ctx context.Context, name, publicKey string) (*KeyPair, error)
	ListKeyPairs(ctx context.Context) ([]KeyPair, error)
	DeleteKeyPair(ctx context.Context, name string) error
}

// NetworkService is the gateway to the networking service.
type NetworkService interface {
	CreateNetwork(ctx context.Context, name, description, physicalNetwork string) (*Network, error)
	GetNetwork(ctx context.Context, id string) (*Network, error)
	ListNetworks(ctx context.Context) ([]Network, error)
	DeleteNetwork(ctx context.Context, id string) error
	// PublicNetworkID resolves the ID of the site's external network.
	PublicNetworkID(ctx context.Context) (string, error)

	CreateSubnet(ctx context.Context, name, networkID, cidr, gatewayIP string) (*Subnet, error)
	ListSubnets(ctx context.Context) ([]Subnet, error)
	DeleteSubnet(ctx context.Context, id string) error

	CreatePort(ctx context.Context, name, networkID string, fixedIPs []FixedIP) (*Port, error)
	ListPorts(ctx context.Context) ([]Port, error)
	DeletePort(ctx context.Context, id string) error

	CreateRouter(ctx context.Context, name, gatewayNetworkID string) (*Router, error)
	ListRouters(ctx context.Context) ([]Router, error)
	DeleteRouter(ctx context.Context, id string) error
	AddRouterInterface(ctx context.Context, routerID, subnetID string) error
	RemoveRouterInterface(ctx context.Context, routerID, subnetID string) error

	ListFloatingIPs(ctx context.Context) ([]FloatingIP, error)
	CreateFloatingIP(ctx context.Context, floatingNetworkID string) (*FloatingIP, error)
	DeleteFloatingIP(ctx context.Context, id string) error
	// BindFloatingIP attaches a floating IP to a port.
	BindFloatingIP(ctx context.Context, floatingIPID, portID string) error
}

// ImageService is the gateway to the image service.
type ImageService interface {
	GetImage(ctx context.Context, id string) (*Image, error)
	ListImages(ctx context.Context) ([]Image, error)
}

// ContainerService is the gateway to the container service.
type ContainerService interface {
	CreateContainer(ctx context.Context, req ContainerCreateRequest) (*Container, error)
	GetContainer(ctx context.Context, ref string) (*Container, error)
	ListContainers(ctx context.Context) ([]Container, error)
	DeleteContainer(ctx context.Context, ref string, stop bool) error
	StartContainer(ctx context.Context, ref string) error
	// Execute runs a one-off command inside a running container.
	Execute(ctx context.Context, ref, command string) (*ExecResult, error)
	Logs(ctx context.Context, ref string, stdout, stderr bool) (string, error)
	// PutArchive uploads a tar archive to a path inside the container.
	PutArchive(ctx context.Context, ref, path string, data []byte) error
	// GetArchive downloads a path inside the container as a tar archive.
	GetArchive(ctx context.Context, ref, path string) ([]byte, error)
}

// ShareService is the gateway to the shared-filesystem service.
type ShareService interface {
	CreateShare(ctx context.Context, req ShareCreateRequest) (*Share, error)
	GetShare(ctx context.Context, id string) (*Share, error)
	ListShares(ctx context.Context) ([]Share, error)
	DeleteShare(ctx context.Context, id string) error
	ExtendShare(ctx context.Context, id string, newSize int) error
	ShrinkShare(ctx context.Context, id string, newSize int) error
	ListShareTypes(ctx context.Context) ([]ShareType, error)
}

// Client combines all service gateways.
type Client interface {
	ReservationService
	ComputeService
	NetworkService
	ImageService
	ContainerService
	ShareService
}
