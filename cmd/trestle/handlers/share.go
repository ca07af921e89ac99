package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/resolve"
)

// ShareCreateInput carries the share create command's arguments.
type ShareCreateInput struct {
	Name      string
	Size      int
	Proto     string
	ShareType string
}

// ShareCreate provisions a file share.
func ShareCreate(ctx context.Context, configPath string, in ShareCreateInput) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	share, err := client.CreateShare(ctx, openstack.ShareCreateRequest{
		Name:      in.Name,
		Size:      in.Size,
		Proto:     in.Proto,
		ShareType: in.ShareType,
	})
	if err != nil {
		return fmt.Errorf("share creation failed: %w", err)
	}

	fmt.Printf("Share %s created (%s, %d GiB)\n", share.Name, share.ID, share.Size)
	for _, loc := range share.ExportLocations {
		fmt.Printf("  Export: %s\n", loc)
	}
	return nil
}

// ShareList prints the project's shares.
func ShareList(ctx context.Context, configPath string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	shares, err := client.ListShares(ctx)
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}

	fmt.Print(renderShareTable(shares))
	return nil
}

// ShareDelete deletes a share by name or ID.
func ShareDelete(ctx context.Context, configPath, ref string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	share, err := resolveShare(ctx, client, ref)
	if err != nil {
		return err
	}
	if err := client.DeleteShare(ctx, share.ID); err != nil {
		return fmt.Errorf("failed to delete share %s: %w", ref, err)
	}

	fmt.Printf("Share %s deleted\n", ref)
	return nil
}

// ShareResize grows or shrinks a share to newSize gigabytes.
func ShareResize(ctx context.Context, configPath, ref string, newSize int) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	share, err := resolveShare(ctx, client, ref)
	if err != nil {
		return err
	}

	switch {
	case newSize > share.Size:
		err = client.ExtendShare(ctx, share.ID, newSize)
	case newSize < share.Size:
		err = client.ShrinkShare(ctx, share.ID, newSize)
	default:
		fmt.Printf("Share %s is already %d GiB\n", share.Name, newSize)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resize share %s: %w", ref, err)
	}

	fmt.Printf("Share %s resized from %d to %d GiB\n", share.Name, share.Size, newSize)
	return nil
}

// ShareTypes prints the provisioning types the share service supports.
func ShareTypes(ctx context.Context, configPath string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	types, err := client.ListShareTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list share types: %w", err)
	}
	for _, t := range types {
		fmt.Printf("%s  %s\n", t.ID, t.Name)
	}
	return nil
}

func resolveShare(ctx context.Context, gw openstack.ShareService, ref string) (*openstack.Share, error) {
	return resolve.ByRef(ctx, "share", ref,
		gw.GetShare,
		gw.ListShares,
		func(s *openstack.Share) string { return s.Name },
	)
}
