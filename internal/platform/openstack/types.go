package openstack

// Reservation resource types used on the wire.
const (
	ResourceTypeNode       = "physical:host"
	ResourceTypeNetwork    = "network"
	ResourceTypeFloatingIP = "virtual:floatingip"
	ResourceTypeDevice     = "device"
	ResourceTypeFlavor     = "flavor:instance"
)

// ReservationRequest is one typed resource request inside a lease-create
// payload. Fields are sparse; only those relevant to the resource type are
// serialized.
type ReservationRequest struct {
	ResourceType string `json:"resource_type"`

	// physical:host and device
	Min                int    `json:"min,omitempty"`
	Max                int    `json:"max,omitempty"`
	ResourceProperties string `json:"resource_properties,omitempty"`

	// physical:host only
	HypervisorProperties string `json:"hypervisor_properties,omitempty"`

	// network
	NetworkName        string `json:"network_name,omitempty"`
	NetworkDescription string `json:"network_description,omitempty"`
	NetworkProperties  string `json:"network_properties,omitempty"`

	// virtual:floatingip
	NetworkID string `json:"network_id,omitempty"`
	Amount    int    `json:"amount,omitempty"`

	// flavor:instance
	FlavorID string `json:"flavor_id,omitempty"`
	Affinity string `json:"affinity,omitempty"`
}

// ReservationRecord is a reservation as reported back by the reservation
// service, with its remote-assigned identity.
type ReservationRecord struct {
	ID           string `json:"id"`
	LeaseID      string `json:"lease_id,omitempty"`
	ResourceType string `json:"resource_type"`
	Status       string `json:"status,omitempty"`

	Min                int    `json:"min,omitempty"`
	Max                int    `json:"max,omitempty"`
	ResourceProperties string `json:"resource_properties,omitempty"`
	NetworkName        string `json:"network_name,omitempty"`
	NetworkID          string `json:"network_id,omitempty"`
	Amount             int    `json:"amount,omitempty"`
	FlavorID           string `json:"flavor_id,omitempty"`
}

// LeaseCreateRequest is the lease-create payload the reservation service
// expects.
type LeaseCreateRequest struct {
	Name         string               `json:"name"`
	Start        string               `json:"start"`
	End          string               `json:"end"`
	Reservations []ReservationRequest `json:"reservations"`
	Events       []map[string]any     `json:"events"`
}

// Lease is the remote representation of a lease.
type Lease struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Status       string              `json:"status"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	UserID       string              `json:"user_id"`
	ProjectID    string              `json:"project_id"`
	CreatedAt    string              `json:"created_at"`
	Reservations []ReservationRecord `json:"reservations"`
}

// Host is one schedulable bare-metal host known to the reservation service.
type Host struct {
	ID                 string `json:"id"`
	HypervisorHostname string `json:"hypervisor_hostname"`
	NodeName           string `json:"node_name"`
	NodeType           string `json:"node_type"`
	Reservable         bool   `json:"reservable"`
}

// Device is one edge device known to the reservation service.
type Device struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MachineName string `json:"machine_name"`
	DeviceModel string `json:"model"`
	Reservable  bool   `json:"reservable"`
}

// AllocationEntry is one reservation window on an allocated resource.
type AllocationEntry struct {
	ID        string `json:"id"`
	LeaseID   string `json:"lease_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Allocation associates a resource with its reservation windows.
type Allocation struct {
	ResourceID   string            `json:"resource_id"`
	Reservations []AllocationEntry `json:"reservations"`
}

// ServerCreateRequest is the compute-service instance create payload.
type ServerCreateRequest struct {
	Name          string            `json:"name"`
	ImageID       string            `json:"imageRef"`
	FlavorID      string            `json:"flavorRef"`
	KeyName       string            `json:"key_name,omitempty"`
	Networks      []ServerNetwork   `json:"networks,omitempty"`
	SchedulerHint map[string]string `json:"scheduler_hints,omitempty"`
	Count         int               `json:"-"`
}

// ServerNetwork selects a network for an instance NIC.
type ServerNetwork struct {
	UUID string `json:"uuid"`
}

// Server is the remote representation of a compute instance.
type Server struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Status    string                     `json:"status"`
	KeyName   string                     `json:"key_name"`
	Addresses map[string][]ServerAddress `json:"addresses"`
	CreatedAt string                     `json:"created"`
}

// ServerAddress is one address attached to a server NIC.
type ServerAddress struct {
	Addr string `json:"addr"`
	Type string `json:"OS-EXT-IPS:type"`
}

// Network is the remote representation of a network.
type Network struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	PhysicalNetwork string `json:"provider:physical_network,omitempty"`
	NetworkType     string `json:"provider:network_type,omitempty"`
	External        bool   `json:"router:external,omitempty"`
}

// Subnet is the remote representation of a subnet.
type Subnet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NetworkID string `json:"network_id"`
	CIDR      string `json:"cidr"`
	GatewayIP string `json:"gateway_ip,omitempty"`
	IPVersion int    `json:"ip_version"`
}

// FixedIP is one subnet/address pair on a port.
type FixedIP struct {
	SubnetID  string `json:"subnet_id"`
	IPAddress string `json:"ip_address,omitempty"`
}

// Port is the remote representation of a network port.
type Port struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NetworkID   string    `json:"network_id"`
	DeviceOwner string    `json:"device_owner"`
	DeviceID    string    `json:"device_id"`
	FixedIPs    []FixedIP `json:"fixed_ips"`
}

// Router is the remote representation of a router.
type Router struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	AdminStateUp        bool         `json:"admin_state_up"`
	ExternalGatewayInfo *GatewayInfo `json:"external_gateway_info,omitempty"`
	Routes              []RouteEntry `json:"routes,omitempty"`
}

// GatewayInfo names the external network a router uplinks to.
type GatewayInfo struct {
	NetworkID string `json:"network_id"`
}

// RouteEntry is one static route on a router.
type RouteEntry struct {
	Destination string `json:"destination"`
	NextHop     string `json:"nexthop"`
}

// FloatingIP is the remote representation of a floating IP. PortID is empty
// when the address is unbound.
type FloatingIP struct {
	ID                string `json:"id"`
	FloatingIPAddress string `json:"floating_ip_address"`
	FloatingNetworkID string `json:"floating_network_id"`
	PortID            string `json:"port_id"`
	ProjectID         string `json:"project_id"`
}

// Image is the remote representation of a disk image.
type Image struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Flavor is the remote representation of an instance flavor.
type Flavor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// KeyPair is a registered SSH public key for instance access.
type KeyPair struct {
	Name        string `json:"name"`
	PublicKey   string `json:"public_key"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// ContainerCreateRequest is the container-service create payload.
type ContainerCreateRequest struct {
	Name           string            `json:"name"`
	Image          string            `json:"image"`
	ImageDriver    string            `json:"image_driver,omitempty"`
	Command        []string          `json:"command,omitempty"`
	Environment    map[string]string `json:"environment,omitempty"`
	ExposedPorts   map[string]any    `json:"exposed_ports,omitempty"`
	Runtime        string            `json:"runtime,omitempty"`
	Nets           []ContainerNet    `json:"nets,omitempty"`
	DeviceProfiles []string          `json:"device_profiles,omitempty"`
	Hints          map[string]string `json:"hints,omitempty"`
}

// ContainerNet selects a network for a container.
type ContainerNet struct {
	Network string `json:"network"`
}

// ContainerAddress is one address attached to a container.
type ContainerAddress struct {
	Addr string `json:"addr"`
	Port string `json:"port"`
}

// Container is the remote representation of a container.
type Container struct {
	UUID      string                        `json:"uuid"`
	Name      string                        `json:"name"`
	Status    string                        `json:"status"`
	Image     string                        `json:"image"`
	Addresses map[string][]ContainerAddress `json:"addresses"`
}

// ExecResult is the outcome of a one-off command inside a container.
type ExecResult struct {
	Output   string `json:"output"`
	ExitCode int    `json:"exit_code"`
}

// ShareCreateRequest is the share-service create payload.
type ShareCreateRequest struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Proto       string `json:"share_proto"`
	Description string `json:"description,omitempty"`
	ShareType   string `json:"share_type,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// Share is the remote representation of a file share.
type Share struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Size            int      `json:"size"`
	Status          string   `json:"status"`
	Proto           string   `json:"share_proto"`
	ExportLocations []string `json:"export_locations"`
}

// ShareType is one provisioning type supported by the share service.
type ShareType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
