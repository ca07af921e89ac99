package openstack

import (
	"context"
	"fmt"
	"net/http"
)

type shareEnvelope struct {
	Share *Share `json:"share"`
}

// CreateShare creates a file share.
func (c *RealClient) CreateShare(ctx context.Context, req ShareCreateRequest) (*Share, error) {
	var out shareEnvelope
	if err := c.do(ctx, serviceShare, http.MethodPost, "/v2/shares", map[string]any{"share": req}, &out); err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}
	return out.Share, nil
}

// GetShare fetches a share by ID.
func (c *RealClient) GetShare(ctx context.Context, id string) (*Share, error) {
	var out shareEnvelope
	if err := c.do(ctx, serviceShare, http.MethodGet, "/v2/shares/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.Share, nil
}

// ListShares lists the project's shares.
func (c *RealClient) ListShares(ctx context.Context) ([]Share, error) {
	var out struct {
		Shares []Share `json:"shares"`
	}
	if err := c.do(ctx, serviceShare, http.MethodGet, "/v2/shares/detail", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return out.Shares, nil
}

// DeleteShare deletes a share by ID.
func (c *RealClient) DeleteShare(ctx context.Context, id string) error {
	if err := c.do(ctx, serviceShare, http.MethodDelete, "/v2/shares/"+id, nil, nil); err != nil {
		return fmt.Errorf("failed to delete share %s: %w", id, err)
	}
	return nil
}

// ExtendShare grows a share to newSize gigabytes.
func (c *RealClient) ExtendShare(ctx context.Context, id string, newSize int) error {
	body := map[string]any{"extend": map[string]int{"new_size": newSize}}
	if err := c.do(ctx, serviceShare, http.MethodPost, "/v2/shares/"+id+"/action", body, nil); err != nil {
		return fmt.Errorf("failed to extend share %s: %w", id, err)
	}
	return nil
}

// ShrinkShare shrinks a share to newSize gigabytes.
func (c *RealClient) ShrinkShare(ctx context.Context, id string, newSize int) error {
	body := map[string]any{"shrink": map[string]int{"new_size": newSize}}
	if err := c.do(ctx, serviceShare, http.MethodPost, "/v2/shares/"+id+"/action", body, nil); err != nil {
		return fmt.Errorf("failed to shrink share %s: %w", id, err)
	}
	return nil
}

// ListShareTypes lists the provisioning types the share service supports.
func (c *RealClient) ListShareTypes(ctx context.Context) ([]ShareType, error) {
	var out struct {
		ShareTypes []ShareType `json:"share_types"`
	}
	if err := c.do(ctx, serviceShare, http.MethodGet, "/v2/types", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list share types: %w", err)
	}
	return out.ShareTypes, nil
}
