package openstack

import (
	"context"
	"fmt"
	"net/http"
)

// GetImage fetches an image by ID.
func (c *RealClient) GetImage(ctx context.Context, id string) (*Image, error) {
	var out Image
	if err := c.do(ctx, serviceImage, http.MethodGet, "/v2/images/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListImages lists active images.
func (c *RealClient) ListImages(ctx context.Context) ([]Image, error) {
	var out struct {
		Images []Image `json:"images"`
	}
	if err := c.do(ctx, serviceImage, http.MethodGet, "/v2/images?status=active", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return out.Images, nil
}
