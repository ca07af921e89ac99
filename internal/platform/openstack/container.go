package openstack

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
)

// CreateContainer creates a container without starting it.
func (c *RealClient) CreateContainer(ctx context.Context, req ContainerCreateRequest) (*Container, error) {
	var out Container
	if err := c.do(ctx, serviceContainer, http.MethodPost, "/v1/containers", req, &out); err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}
	return &out, nil
}

// GetContainer fetches a container by UUID or name.
func (c *RealClient) GetContainer(ctx context.Context, ref string) (*Container, error) {
	var out Container
	if err := c.do(ctx, serviceContainer, http.MethodGet, "/v1/containers/"+ref, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContainers lists the project's containers.
func (c *RealClient) ListContainers(ctx context.Context) ([]Container, error) {
	var out struct {
		Containers []Container `json:"containers"`
	}
	if err := c.do(ctx, serviceContainer, http.MethodGet, "/v1/containers", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return out.Containers, nil
}

// DeleteContainer deletes a container. With stop set, a running container is
// stopped first instead of the delete being rejected.
func (c *RealClient) DeleteContainer(ctx context.Context, ref string, stop bool) error {
	path := "/v1/containers/" + ref
	if stop {
		path += "?stop=true"
	}
	if err := c.do(ctx, serviceContainer, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete container %s: %w", ref, err)
	}
	return nil
}

// StartContainer starts a created or stopped container.
func (c *RealClient) StartContainer(ctx context.Context, ref string) error {
	if err := c.do(ctx, serviceContainer, http.MethodPost, "/v1/containers/"+ref+"/start", nil, nil); err != nil {
		return fmt.Errorf("failed to start container %s: %w", ref, err)
	}
	return nil
}

// Execute runs a one-off command inside a running container and waits for
// its output.
func (c *RealClient) Execute(ctx context.Context, ref, command string) (*ExecResult, error) {
	path := "/v1/containers/" + ref + "/execute?command=" + url.QueryEscape(command) + "&run=true"
	var out ExecResult
	if err := c.do(ctx, serviceContainer, http.MethodPost, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to execute command in container %s: %w", ref, err)
	}
	return &out, nil
}

// Logs fetches container output from the requested streams.
func (c *RealClient) Logs(ctx context.Context, ref string, stdout, stderr bool) (string, error) {
	path := fmt.Sprintf("/v1/containers/%s/logs?stdout=%t&stderr=%t", ref, stdout, stderr)
	var out string
	if err := c.do(ctx, serviceContainer, http.MethodGet, path, nil, &out); err != nil {
		return "", fmt.Errorf("failed to fetch logs for container %s: %w", ref, err)
	}
	return out, nil
}

// PutArchive uploads a tar archive and extracts it at path inside the
// container. The archive travels base64-encoded in the request body.
func (c *RealClient) PutArchive(ctx context.Context, ref, path string, data []byte) error {
	body := map[string]string{
		"data": base64.StdEncoding.EncodeToString(data),
	}
	reqPath := "/v1/containers/" + ref + "/put_archive?path=" + url.QueryEscape(path)
	if err := c.do(ctx, serviceContainer, http.MethodPost, reqPath, body, nil); err != nil {
		return fmt.Errorf("failed to upload archive to container %s: %w", ref, err)
	}
	return nil
}

// GetArchive downloads path inside the container as a tar archive.
func (c *RealClient) GetArchive(ctx context.Context, ref, path string) ([]byte, error) {
	var out struct {
		Data string `json:"data"`
	}
	reqPath := "/v1/containers/" + ref + "/get_archive?path=" + url.QueryEscape(path)
	if err := c.do(ctx, serviceContainer, http.MethodGet, reqPath, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to download archive from container %s: %w", ref, err)
	}
	data, err := base64.StdEncoding.DecodeString(out.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode archive from container %s: %w", ref, err)
	}
	return data, nil
}
