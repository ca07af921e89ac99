package openstack

import (
	"context"
)

// MockClient is a mock implementation of Client. Each method delegates to
// its corresponding Func field when set and otherwise returns a benign
// default, so tests only configure the calls they care about.
type MockClient struct {
	// Reservation
	CreateLeaseFunc           func(ctx context.Context, req LeaseCreateRequest) (*Lease, error)
	GetLeaseFunc              func(ctx context.Context, id string) (*Lease, error)
	UpdateLeaseFunc           func(ctx context.Context, id, name, prolongFor string) (*Lease, error)
	DeleteLeaseFunc           func(ctx context.Context, id string) error
	ListLeasesFunc            func(ctx context.Context) ([]Lease, error)
	ListHostsFunc             func(ctx context.Context) ([]Host, error)
	ListHostAllocationsFunc   func(ctx context.Context) ([]Allocation, error)
	GetHostAllocationFunc     func(ctx context.Context, hostID string) (*Allocation, error)
	ListDevicesFunc           func(ctx context.Context) ([]Device, error)
	ListDeviceAllocationsFunc func(ctx context.Context) ([]Allocation, error)

	// Compute
	CreateServerFunc  func(ctx context.Context, req ServerCreateRequest) (*Server, error)
	GetServerFunc     func(ctx context.Context, id string) (*Server, error)
	ListServersFunc   func(ctx context.Context) ([]Server, error)
	DeleteServerFunc  func(ctx context.Context, id string) error
	AddFloatingIPFunc func(ctx context.Context, serverID, address string) error
	ListFlavorsFunc   func(ctx context.Context) ([]Flavor, error)
	CreateKeyPairFunc func(ctx context.Context, name, publicKey string) (*KeyPair, error)
	ListKeyPairsFunc  func(ctx context.Context) ([]KeyPair, error)
	DeleteKeyPairFunc func(ctx context.Context, name string) error

	// Network
	CreateNetworkFunc         func(ctx context.Context, name, description, physicalNetwork string) (*Network, error)
	GetNetworkFunc            func(ctx context.Context, id string) (*Network, error)
	ListNetworksFunc          func(ctx context.Context) ([]Network, error)
	DeleteNetworkFunc         func(ctx context.Context, id string) error
	PublicNetworkIDFunc       func(ctx context.Context) (string, error)
	CreateSubnetFunc          func(ctx context.Context, name, networkID, cidr, gatewayIP string) (*Subnet, error)
	ListSubnetsFunc           func(ctx context.Context) ([]Subnet, error)
	DeleteSubnetFunc          func(ctx context.Context, id string) error
	CreatePortFunc            func(ctx context.Context, name, networkID string, fixedIPs []FixedIP) (*Port, error)
	ListPortsFunc             func(ctx context.Context) ([]Port, error)
	DeletePortFunc            func(ctx context.Context, id string) error
	CreateRouterFunc          func(ctx context.Context, name, gatewayNetworkID string) (*Router, error)
	ListRoutersFunc           func(ctx context.Context) ([]Router, error)
	DeleteRouterFunc          func(ctx context.Context, id string) error
	AddRouterInterfaceFunc    func(ctx context.Context, routerID, subnetID string) error
	RemoveRouterInterfaceFunc func(ctx context.Context, routerID, subnetID string) error
	ListFloatingIPsFunc       func(ctx context.Context) ([]FloatingIP, error)
	CreateFloatingIPFunc      func(ctx context.Context, floatingNetworkID string) (*FloatingIP, error)
	DeleteFloatingIPFunc      func(ctx context.Context, id string) error
	BindFloatingIPFunc        func(ctx context.Context, floatingIPID, portID string) error

	// Image
	GetImageFunc   func(ctx context.Context, id string) (*Image, error)
	ListImagesFunc func(ctx context.Context) ([]Image, error)

	// Container
	CreateContainerFunc func(ctx context.Context, req ContainerCreateRequest) (*Container, error)
	GetContainerFunc    func(ctx context.Context, ref string) (*Container, error)
	ListContainersFunc  func(ctx context.Context) ([]Container, error)
	DeleteContainerFunc func(ctx context.Context, ref string, stop bool) error
	StartContainerFunc  func(ctx context.Context, ref string) error
	ExecuteFunc         func(ctx context.Context, ref, command string) (*ExecResult, error)
	LogsFunc            func(ctx context.Context, ref string, stdout, stderr bool) (string, error)
	PutArchiveFunc      func(ctx context.Context, ref, path string, data []byte) error
	GetArchiveFunc      func(ctx context.Context, ref, path string) ([]byte, error)

	// Share
	CreateShareFunc    func(ctx context.Context, req ShareCreateRequest) (*Share, error)
	GetShareFunc       func(ctx context.Context, id string) (*Share, error)
	ListSharesFunc     func(ctx context.Context) ([]Share, error)
	DeleteShareFunc    func(ctx context.Context, id string) error
	ExtendShareFunc    func(ctx context.Context, id string, newSize int) error
	ShrinkShareFunc    func(ctx context.Context, id string, newSize int) error
	ListShareTypesFunc func(ctx context.Context) ([]ShareType, error)
}

// Ensure interface compliance
var _ Client = (*MockClient)(nil)

// CreateLease mocks lease creation.
func (m *MockClient) CreateLease(ctx context.Context, req LeaseCreateRequest) (*Lease, error) {
	if m.CreateLeaseFunc != nil {
		return m.CreateLeaseFunc(ctx, req)
	}
	recs := make([]ReservationRecord, len(req.Reservations))
	for i, r := range req.Reservations {
		recs[i] = ReservationRecord{ID: "mock-reservation", ResourceType: r.ResourceType}
	}
	return &Lease{
		ID:           "mock-lease-id",
		Name:         req.Name,
		Status:       "PENDING",
		StartDate:    req.Start,
		EndDate:      req.End,
		Reservations: recs,
	}, nil
}

// GetLease mocks lease retrieval.
func (m *MockClient) GetLease(ctx context.Context, id string) (*Lease, error) {
	if m.GetLeaseFunc != nil {
		return m.GetLeaseFunc(ctx, id)
	}
	return &Lease{ID: id, Status: "ACTIVE"}, nil
}

// UpdateLease mocks lease update.
func (m *MockClient) UpdateLease(ctx context.Context, id, name, prolongFor string) (*Lease, error) {
	if m.UpdateLeaseFunc != nil {
		return m.UpdateLeaseFunc(ctx, id, name, prolongFor)
	}
	return &Lease{ID: id, Name: name, Status: "ACTIVE"}, nil
}

// DeleteLease mocks lease deletion.
func (m *MockClient) DeleteLease(ctx context.Context, id string) error {
	if m.DeleteLeaseFunc != nil {
		return m.DeleteLeaseFunc(ctx, id)
	}
	return nil
}

// ListLeases mocks lease listing.
func (m *MockClient) ListLeases(ctx context.Context) ([]Lease, error) {
	if m.ListLeasesFunc != nil {
		return m.ListLeasesFunc(ctx)
	}
	return nil, nil
}

// ListHosts mocks host listing.
func (m *MockClient) ListHosts(ctx context.Context) ([]Host, error) {
	if m.ListHostsFunc != nil {
		return m.ListHostsFunc(ctx)
	}
	return nil, nil
}

// ListHostAllocations mocks host allocation listing.
func (m *MockClient) ListHostAllocations(ctx context.Context) ([]Allocation, error) {
	if m.ListHostAllocationsFunc != nil {
		return m.ListHostAllocationsFunc(ctx)
	}
	return nil, nil
}

// GetHostAllocation mocks host allocation retrieval.
func (m *MockClient) GetHostAllocation(ctx context.Context, hostID string) (*Allocation, error) {
	if m.GetHostAllocationFunc != nil {
		return m.GetHostAllocationFunc(ctx, hostID)
	}
	return &Allocation{ResourceID: hostID}, nil
}

// ListDevices mocks device listing.
func (m *MockClient) ListDevices(ctx context.Context) ([]Device, error) {
	if m.ListDevicesFunc != nil {
		return m.ListDevicesFunc(ctx)
	}
	return nil, nil
}

// ListDeviceAllocations mocks device allocation listing.
func (m *MockClient) ListDeviceAllocations(ctx context.Context) ([]Allocation, error) {
	if m.ListDeviceAllocationsFunc != nil {
		return m.ListDeviceAllocationsFunc(ctx)
	}
	return nil, nil
}

// CreateServer mocks server creation.
func (m *MockClient) CreateServer(ctx context.Context, req ServerCreateRequest) (*Server, error) {
	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, req)
	}
	return &Server{ID: "mock-server-id", Name: req.Name, Status: "BUILD"}, nil
}

// GetServer mocks server retrieval.
func (m *MockClient) GetServer(ctx context.Context, id string) (*Server, error) {
	if m.GetServerFunc != nil {
		return m.GetServerFunc(ctx, id)
	}
	return &Server{ID: id, Status: "ACTIVE"}, nil
}

// ListServers mocks server listing.
func (m *MockClient) ListServers(ctx context.Context) ([]Server, error) {
	if m.ListServersFunc != nil {
		return m.ListServersFunc(ctx)
	}
	return nil, nil
}

// DeleteServer mocks server deletion.
func (m *MockClient) DeleteServer(ctx context.Context, id string) error {
	if m.DeleteServerFunc != nil {
		return m.DeleteServerFunc(ctx, id)
	}
	return nil
}

// AddFloatingIP mocks attaching a floating IP to a server.
func (m *MockClient) AddFloatingIP(ctx context.Context, serverID, address string) error {
	if m.AddFloatingIPFunc != nil {
		return m.AddFloatingIPFunc(ctx, serverID, address)
	}
	return nil
}

// ListFlavors mocks flavor listing.
func (m *MockClient) ListFlavors(ctx context.Context) ([]Flavor, error) {
	if m.ListFlavorsFunc != nil {
		return m.ListFlavorsFunc(ctx)
	}
	return []Flavor{{ID: "mock-flavor-id", Name: "baremetal"}}, nil
}

// CreateKeyPair mocks keypair registration.
func (m *MockClient) CreateKeyPair(ctx context.Context, name, publicKey string) (*KeyPair, error) {
	if m.CreateKeyPairFunc != nil {
		return m.CreateKeyPairFunc(ctx, name, publicKey)
	}
	return &KeyPair{Name: name, PublicKey: publicKey}, nil
}

// ListKeyPairs mocks keypair listing.
func (m *MockClient) ListKeyPairs(ctx context.Context) ([]KeyPair, error) {
	if m.ListKeyPairsFunc != nil {
		return m.ListKeyPairsFunc(ctx)
	}
	return []KeyPair{{Name: "mock-keypair", PublicKey: "ssh-ed25519 AAAA mock"}}, nil
}

// DeleteKeyPair mocks keypair deletion.
func (m *MockClient) DeleteKeyPair(ctx context.Context, name string) error {
	if m.DeleteKeyPairFunc != nil {
		return m.DeleteKeyPairFunc(ctx, name)
	}
	return nil
}

// CreateNetwork mocks network creation.
func (m *MockClient) CreateNetwork(ctx context.Context, name, description, physicalNetwork string) (*Network, error) {
	if m.CreateNetworkFunc != nil {
		return m.CreateNetworkFunc(ctx, name, description, physicalNetwork)
	}
	return &Network{ID: "mock-network-id", Name: name, Description: description}, nil
}

// GetNetwork mocks network retrieval.
func (m *MockClient) GetNetwork(ctx context.Context, id string) (*Network, error) {
	if m.GetNetworkFunc != nil {
		return m.GetNetworkFunc(ctx, id)
	}
	return &Network{ID: id}, nil
}

// ListNetworks mocks network listing.
func (m *MockClient) ListNetworks(ctx context.Context) ([]Network, error) {
	if m.ListNetworksFunc != nil {
		return m.ListNetworksFunc(ctx)
	}
	return nil, nil
}

// DeleteNetwork mocks network deletion.
func (m *MockClient) DeleteNetwork(ctx context.Context, id string) error {
	if m.DeleteNetworkFunc != nil {
		return m.DeleteNetworkFunc(ctx, id)
	}
	return nil
}

// PublicNetworkID mocks external network lookup.
func (m *MockClient) PublicNetworkID(ctx context.Context) (string, error) {
	if m.PublicNetworkIDFunc != nil {
		return m.PublicNetworkIDFunc(ctx)
	}
	return "mock-public-network-id", nil
}

// CreateSubnet mocks subnet creation.
func (m *MockClient) CreateSubnet(ctx context.Context, name, networkID, cidr, gatewayIP string) (*Subnet, error) {
	if m.CreateSubnetFunc != nil {
		return m.CreateSubnetFunc(ctx, name, networkID, cidr, gatewayIP)
	}
	return &Subnet{ID: "mock-subnet-id", Name: name, NetworkID: networkID, CIDR: cidr}, nil
}

// ListSubnets mocks subnet listing.
func (m *MockClient) ListSubnets(ctx context.Context) ([]Subnet, error) {
	if m.ListSubnetsFunc != nil {
		return m.ListSubnetsFunc(ctx)
	}
	return nil, nil
}

// DeleteSubnet mocks subnet deletion.
func (m *MockClient) DeleteSubnet(ctx context.Context, id string) error {
	if m.DeleteSubnetFunc != nil {
		return m.DeleteSubnetFunc(ctx, id)
	}
	return nil
}

// CreatePort mocks port creation.
func (m *MockClient) CreatePort(ctx context.Context, name, networkID string, fixedIPs []FixedIP) (*Port, error) {
	if m.CreatePortFunc != nil {
		return m.CreatePortFunc(ctx, name, networkID, fixedIPs)
	}
	return &Port{ID: "mock-port-id", Name: name, NetworkID: networkID, FixedIPs: fixedIPs}, nil
}

// ListPorts mocks port listing.
func (m *MockClient) ListPorts(ctx context.Context) ([]Port, error) {
	if m.ListPortsFunc != nil {
		return m.ListPortsFunc(ctx)
	}
	return nil, nil
}

// DeletePort mocks port deletion.
func (m *MockClient) DeletePort(ctx context.Context, id string) error {
	if m.DeletePortFunc != nil {
		return m.DeletePortFunc(ctx, id)
	}
	return nil
}

// CreateRouter mocks router creation.
func (m *MockClient) CreateRouter(ctx context.Context, name, gatewayNetworkID string) (*Router, error) {
	if m.CreateRouterFunc != nil {
		return m.CreateRouterFunc(ctx, name, gatewayNetworkID)
	}
	return &Router{ID: "mock-router-id", Name: name}, nil
}

// ListRouters mocks router listing.
func (m *MockClient) ListRouters(ctx context.Context) ([]Router, error) {
	if m.ListRoutersFunc != nil {
		return m.ListRoutersFunc(ctx)
	}
	return nil, nil
}

// DeleteRouter mocks router deletion.
func (m *MockClient) DeleteRouter(ctx context.Context, id string) error {
	if m.DeleteRouterFunc != nil {
		return m.DeleteRouterFunc(ctx, id)
	}
	return nil
}

// AddRouterInterface mocks attaching a subnet to a router.
func (m *MockClient) AddRouterInterface(ctx context.Context, routerID, subnetID string) error {
	if m.AddRouterInterfaceFunc != nil {
		return m.AddRouterInterfaceFunc(ctx, routerID, subnetID)
	}
	return nil
}

// RemoveRouterInterface mocks detaching a subnet from a router.
func (m *MockClient) RemoveRouterInterface(ctx context.Context, routerID, subnetID string) error {
	if m.RemoveRouterInterfaceFunc != nil {
		return m.RemoveRouterInterfaceFunc(ctx, routerID, subnetID)
	}
	return nil
}

// ListFloatingIPs mocks floating IP listing.
func (m *MockClient) ListFloatingIPs(ctx context.Context) ([]FloatingIP, error) {
	if m.ListFloatingIPsFunc != nil {
		return m.ListFloatingIPsFunc(ctx)
	}
	return nil, nil
}

// CreateFloatingIP mocks floating IP allocation.
func (m *MockClient) CreateFloatingIP(ctx context.Context, floatingNetworkID string) (*FloatingIP, error) {
	if m.CreateFloatingIPFunc != nil {
		return m.CreateFloatingIPFunc(ctx, floatingNetworkID)
	}
	return &FloatingIP{
		ID:                "mock-fip-id",
		FloatingIPAddress: "192.0.2.1",
		FloatingNetworkID: floatingNetworkID,
	}, nil
}

// DeleteFloatingIP mocks floating IP release.
func (m *MockClient) DeleteFloatingIP(ctx context.Context, id string) error {
	if m.DeleteFloatingIPFunc != nil {
		return m.DeleteFloatingIPFunc(ctx, id)
	}
	return nil
}

// BindFloatingIP mocks attaching a floating IP to a port.
func (m *MockClient) BindFloatingIP(ctx context.Context, floatingIPID, portID string) error {
	if m.BindFloatingIPFunc != nil {
		return m.BindFloatingIPFunc(ctx, floatingIPID, portID)
	}
	return nil
}

// GetImage mocks image retrieval.
func (m *MockClient) GetImage(ctx context.Context, id string) (*Image, error) {
	if m.GetImageFunc != nil {
		return m.GetImageFunc(ctx, id)
	}
	return &Image{ID: id, Status: "active"}, nil
}

// ListImages mocks image listing.
func (m *MockClient) ListImages(ctx context.Context) ([]Image, error) {
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx)
	}
	return []Image{{ID: "mock-image-id", Name: "CC-Ubuntu24.04", Status: "active"}}, nil
}

// CreateContainer mocks container creation.
func (m *MockClient) CreateContainer(ctx context.Context, req ContainerCreateRequest) (*Container, error) {
	if m.CreateContainerFunc != nil {
		return m.CreateContainerFunc(ctx, req)
	}
	return &Container{UUID: "mock-container-id", Name: req.Name, Status: "Created", Image: req.Image}, nil
}

// GetContainer mocks container retrieval.
func (m *MockClient) GetContainer(ctx context.Context, ref string) (*Container, error) {
	if m.GetContainerFunc != nil {
		return m.GetContainerFunc(ctx, ref)
	}
	return &Container{UUID: ref, Status: "Running"}, nil
}

// ListContainers mocks container listing.
func (m *MockClient) ListContainers(ctx context.Context) ([]Container, error) {
	if m.ListContainersFunc != nil {
		return m.ListContainersFunc(ctx)
	}
	return nil, nil
}

// DeleteContainer mocks container deletion.
func (m *MockClient) DeleteContainer(ctx context.Context, ref string, stop bool) error {
	if m.DeleteContainerFunc != nil {
		return m.DeleteContainerFunc(ctx, ref, stop)
	}
	return nil
}

// StartContainer mocks container start.
func (m *MockClient) StartContainer(ctx context.Context, ref string) error {
	if m.StartContainerFunc != nil {
		return m.StartContainerFunc(ctx, ref)
	}
	return nil
}

// Execute mocks running a command inside a container.
func (m *MockClient) Execute(ctx context.Context, ref, command string) (*ExecResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, ref, command)
	}
	return &ExecResult{Output: "", ExitCode: 0}, nil
}

// Logs mocks fetching container logs.
func (m *MockClient) Logs(ctx context.Context, ref string, stdout, stderr bool) (string, error) {
	if m.LogsFunc != nil {
		return m.LogsFunc(ctx, ref, stdout, stderr)
	}
	return "", nil
}

// PutArchive mocks uploading an archive into a container.
func (m *MockClient) PutArchive(ctx context.Context, ref, path string, data []byte) error {
	if m.PutArchiveFunc != nil {
		return m.PutArchiveFunc(ctx, ref, path, data)
	}
	return nil
}

// GetArchive mocks downloading an archive from a container.
func (m *MockClient) GetArchive(ctx context.Context, ref, path string) ([]byte, error) {
	if m.GetArchiveFunc != nil {
		return m.GetArchiveFunc(ctx, ref, path)
	}
	return nil, nil
}

// CreateShare mocks share creation.
func (m *MockClient) CreateShare(ctx context.Context, req ShareCreateRequest) (*Share, error) {
	if m.CreateShareFunc != nil {
		return m.CreateShareFunc(ctx, req)
	}
	return &Share{ID: "mock-share-id", Name: req.Name, Size: req.Size, Status: "available"}, nil
}

// GetShare mocks share retrieval.
func (m *MockClient) GetShare(ctx context.Context, id string) (*Share, error) {
	if m.GetShareFunc != nil {
		return m.GetShareFunc(ctx, id)
	}
	return &Share{ID: id, Status: "available"}, nil
}

// ListShares mocks share listing.
func (m *MockClient) ListShares(ctx context.Context) ([]Share, error) {
	if m.ListSharesFunc != nil {
		return m.ListSharesFunc(ctx)
	}
	return nil, nil
}

// DeleteShare mocks share deletion.
func (m *MockClient) DeleteShare(ctx context.Context, id string) error {
	if m.DeleteShareFunc != nil {
		return m.DeleteShareFunc(ctx, id)
	}
	return nil
}

// ExtendShare mocks growing a share.
func (m *MockClient) ExtendShare(ctx context.Context, id string, newSize int) error {
	if m.ExtendShareFunc != nil {
		return m.ExtendShareFunc(ctx, id, newSize)
	}
	return nil
}

// ShrinkShare mocks shrinking a share.
func (m *MockClient) ShrinkShare(ctx context.Context, id string, newSize int) error {
	if m.ShrinkShareFunc != nil {
		return m.ShrinkShareFunc(ctx, id, newSize)
	}
	return nil
}

// ListShareTypes mocks share type listing.
func (m *MockClient) ListShareTypes(ctx context.Context) ([]ShareType, error) {
	if m.ListShareTypesFunc != nil {
		return m.ListShareTypesFunc(ctx)
	}
	return []ShareType{{ID: "mock-share-type-id", Name: "default"}}, nil
}
