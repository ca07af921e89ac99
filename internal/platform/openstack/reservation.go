package openstack

import (
	"context"
	"fmt"
	"net/http"
)

type leaseEnvelope struct {
	Lease *Lease `json:"lease"`
}

type leasesEnvelope struct {
	Leases []Lease `json:"leases"`
}

// CreateLease submits the lease-create payload to the reservation service.
func (c *RealClient) CreateLease(ctx context.Context, req LeaseCreateRequest) (*Lease, error) {
	if req.Events == nil {
		req.Events = []map[string]any{}
	}
	var out leaseEnvelope
	if err := c.do(ctx, serviceReservation, http.MethodPost, "/v1/leases", req, &out); err != nil {
		return nil, fmt.Errorf("failed to create lease: %w", err)
	}
	return out.Lease, nil
}

// GetLease fetches a lease by ID.
func (c *RealClient) GetLease(ctx context.Context, id string) (*Lease, error) {
	var out leaseEnvelope
	if err := c.do(ctx, serviceReservation, http.MethodGet, "/v1/leases/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.Lease, nil
}

// UpdateLease renames and/or prolongs a lease.
func (c *RealClient) UpdateLease(ctx context.Context, id string, name string, prolongFor string) (*Lease, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	if prolongFor != "" {
		body["prolong_for"] = prolongFor
	}
	var out leaseEnvelope
	if err := c.do(ctx, serviceReservation, http.MethodPut, "/v1/leases/"+id, body, &out); err != nil {
		return nil, fmt.Errorf("failed to update lease %s: %w", id, err)
	}
	return out.Lease, nil
}

// DeleteLease deletes a lease by ID.
func (c *RealClient) DeleteLease(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceReservation, http.MethodDelete, "/v1/leases/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete lease %s: %w", id, err)
	}
	return nil
}

// ListLeases lists all leases visible to the project.
func (c *RealClient) ListLeases(ctx context.Context) ([]Lease, error) {
	var out leasesEnvelope
	if err := c.do(ctx, serviceReservation, http.MethodGet, "/v1/leases", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	return out.Leases, nil
}

// ListHosts lists the schedulable hosts known to the reservation service.
func (c *RealClient) ListHosts(ctx context.Context) ([]Host, error) {
	var out struct {
		Hosts []Host `json:"hosts"`
	}
	if err := c.do(ctx, serviceReservation, http.MethodGet, "/v1/os-hosts", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list hosts: %w", err)
	}
	return out.Hosts, nil
}

// ListHostAllocations lists reservation windows for all hosts.
func (c *RealClient) ListHostAllocations(ctx context.Context) ([]Allocation, error) {
	var out struct {
		Allocations []Allocation `json:"allocations"`
	}
	if err := c.do(ctx, serviceReservation, http.MethodGet, "/v1/os-hosts/allocations", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list host allocations: %w", err)
	}
	return out.Allocations, nil
}

// GetHostAllocation fetches the reservation windows for one host.
func (c *RealClient) GetHostAllocation(ctx context.Context, hostID string) (*Allocation, error) {
	var out struct {
		Allocation *Allocation `json:"allocation"`
	}
	if err := c.do(ctx, serviceReservation, http.MethodGet, "/v1/os-hosts/"+hostID+"/allocation", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get allocation for host %s: %w", hostID, err)
	}
	return out.Allocation, nil
}

// ListDevices lists the edge devices known to the reservation service.
func (c *RealClient) ListDevices(ctx context.Context) ([]Device, error) {
	var out struct {
		Devices []Device `json:"devices"`
	}
	if err := c.do(ctx, serviceReservation, http.MethodGet, "/v1/devices", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return out.Devices, nil
}

// ListDeviceAllocations lists reservation windows for all devices.
func (c *RealClient) ListDeviceAllocations(ctx context.Context) ([]Allocation, error) {
	var out struct {
		Allocations []Allocation `json:"allocations"`
	}
	if err := c.do(ctx, serviceReservation, http.MethodGet, "/v1/devices/allocations", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list device allocations: %w", err)
	}
	return out.Allocations, nil
}
