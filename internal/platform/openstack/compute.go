package openstack

import (
	"context"
	"fmt"
	"net/http"
)

type serverEnvelope struct {
	Server *Server `json:"server"`
}

// CreateServer boots a new instance. The reservation scheduler hint, when
// present in req, routes placement to the reserved hosts.
func (c *RealClient) CreateServer(ctx context.Context, req ServerCreateRequest) (*Server, error) {
	count := req.Count
	if count < 1 {
		count = 1
	}
	body := map[string]any{
		"server": map[string]any{
			"name":      req.Name,
			"imageRef":  req.ImageID,
			"flavorRef": req.FlavorID,
			"key_name":  req.KeyName,
			"networks":  req.Networks,
			"min_count": count,
			"max_count": count,
		},
	}
	if len(req.SchedulerHint) > 0 {
		body["os:scheduler_hints"] = req.SchedulerHint
	}

	var out serverEnvelope
	if err := c.do(ctx, serviceCompute, http.MethodPost, "/servers", body, &out); err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return out.Server, nil
}

// GetServer fetches an instance by ID.
func (c *RealClient) GetServer(ctx context.Context, id string) (*Server, error) {
	var out serverEnvelope
	if err := c.do(ctx, serviceCompute, http.MethodGet, "/servers/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.Server, nil
}

// ListServers lists instances visible to the project.
func (c *RealClient) ListServers(ctx context.Context) ([]Server, error) {
	var out struct {
		Servers []Server `json:"servers"`
	}
	if err := c.do(ctx, serviceCompute, http.MethodGet, "/servers/detail", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	return out.Servers, nil
}

// DeleteServer deletes an instance by ID.
func (c *RealClient) DeleteServer(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceCompute, http.MethodDelete, "/servers/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete server %s: %w", id, err)
	}
	return nil
}

// AddFloatingIP binds a floating IP address to the server's primary NIC.
func (c *RealClient) AddFloatingIP(ctx context.Context, serverID, address string) error {
	body := map[string]any{
		"addFloatingIp": map[string]string{"address": address},
	}
	if err := c.do(ctx, serviceCompute, http.MethodPost, "/servers/"+serverID+"/action", body, nil); err != nil {
		return fmt.Errorf("failed to add floating IP to server %s: %w", serverID, err)
	}
	return nil
}

// ListFlavors lists the available instance flavors.
func (c *RealClient) ListFlavors(ctx context.Context) ([]Flavor, error) {
	var out struct {
		Flavors []Flavor `json:"flavors"`
	}
	if err := c.do(ctx, serviceCompute, http.MethodGet, "/flavors", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list flavors: %w", err)
	}
	return out.Flavors, nil
}

type keyPairEnvelope struct {
	KeyPair *KeyPair `json:"keypair"`
}

// CreateKeyPair registers an SSH public key under the given name.
func (c *RealClient) CreateKeyPair(ctx context.Context, name, publicKey string) (*KeyPair, error) {
	body := map[string]any{
		"keypair": map[string]string{
			"name":       name,
			"public_key": publicKey,
		},
	}
	var out keyPairEnvelope
	if err := c.do(ctx, serviceCompute, http.MethodPost, "/os-keypairs", body, &out); err != nil {
		return nil, fmt.Errorf("failed to create keypair %s: %w", name, err)
	}
	return out.KeyPair, nil
}

// ListKeyPairs lists the project's registered keypairs.
func (c *RealClient) ListKeyPairs(ctx context.Context) ([]KeyPair, error) {
	var out struct {
		KeyPairs []keyPairEnvelope `json:"keypairs"`
	}
	if err := c.do(ctx, serviceCompute, http.MethodGet, "/os-keypairs", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list keypairs: %w", err)
	}
	pairs := make([]KeyPair, 0, len(out.KeyPairs))
	for _, kp := range out.KeyPairs {
		if kp.KeyPair != nil {
			pairs = append(pairs, *kp.KeyPair)
		}
	}
	return pairs, nil
}

// DeleteKeyPair removes a registered keypair by name.
func (c *RealClient) DeleteKeyPair(ctx context.Context, name string) error {
	if err := c.do(ctx, serviceCompute, http.MethodDelete, "/os-keypairs/"+name, nil, nil); err != nil {
		return fmt.Errorf("failed to delete keypair %s: %w", name, err)
	}
	return nil
}
