package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imamik/trestle/internal/compute"
	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/lease"
	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/resolve"
	"github.com/imamik/trestle/internal/ssh"
)

// ServerCreateInput carries the server create command's arguments.
type ServerCreateInput struct {
	Name       string
	Lease      string
	Image      string
	Flavor     string
	KeyName    string
	Network    string
	Count      int
	FloatingIP bool
}

// ServerCreate boots a server on the node reserved by a lease, waits until
// it is ACTIVE, and optionally attaches a floating IP.
func ServerCreate(ctx context.Context, configPath string, in ServerCreateInput) error {
	cfg, client, observer, err := setup(configPath)
	if err != nil {
		return err
	}
	timeouts := loadTimeouts()

	l, err := lease.FromExisting(ctx, client, in.Lease)
	if err != nil {
		return err
	}
	reservationID, err := l.NodeReservationID()
	if err != nil {
		return err
	}

	image, err := resolveImage(ctx, client, in.Image)
	if err != nil {
		return err
	}
	flavorID, err := resolveFlavor(ctx, client, in.Flavor)
	if err != nil {
		return err
	}

	networkID := ""
	if ref := firstNonEmpty(in.Network, cfg.NetworkName); ref != "" {
		net, err := resolveNetwork(ctx, client, ref)
		if err != nil {
			return err
		}
		networkID = net.ID
	}

	srv := compute.New(client, in.Name, compute.CreateOptions{
		ImageID:       image.ID,
		FlavorID:      flavorID,
		KeyName:       firstNonEmpty(in.KeyName, cfg.KeypairName),
		NetworkID:     networkID,
		ReservationID: reservationID,
		Count:         in.Count,
	}, compute.WithObserver(observer), compute.WithTimeouts(timeouts))

	if err := srv.Submit(ctx); err != nil {
		return fmt.Errorf("server creation failed: %w", err)
	}
	if err := srv.Wait(ctx, timeouts.ServerWait); err != nil {
		return err
	}

	fmt.Printf("Server %s is %s\n", srv.Name, styledStatus(srv.Status))

	if in.FloatingIP {
		assoc, err := srv.AssociateFloatingIP(ctx)
		if err != nil {
			return fmt.Errorf("floating IP association failed: %w", err)
		}
		fmt.Printf("Floating IP: %s\n", assoc.FloatingIP.FloatingIPAddress)
	}

	return nil
}

// ServerDelete deletes a server by ID or name.
func ServerDelete(ctx context.Context, configPath, ref string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	srv, err := compute.Get(ctx, client, ref)
	if err != nil {
		return err
	}
	if err := client.DeleteServer(ctx, srv.ID); err != nil {
		return fmt.Errorf("failed to delete server %s: %w", ref, err)
	}

	fmt.Printf("Server %s deleted\n", srv.Name)
	return nil
}

// newRunner is replaced in tests to avoid real SSH connections.
var newRunner = func(host string, privateKey []byte) ssh.Runner {
	return ssh.NewRemote(host, privateKey)
}

// ServerExec runs a command on a server over SSH via its floating IP.
func ServerExec(ctx context.Context, configPath, ref, keyPath, command string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	srv, err := compute.Get(ctx, client, ref)
	if err != nil {
		return err
	}
	addr := floatingAddress(srv)
	if addr == "" {
		return errdefs.Resource(nil, "server %s has no floating IP to connect to", ref)
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}

	output, err := newRunner(addr, key).Execute(ctx, command)
	fmt.Print(output)
	return err
}

// floatingAddress picks the server's floating IP, if one is attached.
func floatingAddress(srv *openstack.Server) string {
	for _, addrs := range srv.Addresses {
		for _, a := range addrs {
			if a.Type == "floating" {
				return a.Addr
			}
		}
	}
	return ""
}

func resolveImage(ctx context.Context, gw openstack.ImageService, ref string) (*openstack.Image, error) {
	return resolve.ByRef(ctx, "image", ref,
		gw.GetImage,
		gw.ListImages,
		func(i *openstack.Image) string { return i.Name },
	)
}

func resolveNetwork(ctx context.Context, gw openstack.NetworkService, ref string) (*openstack.Network, error) {
	return resolve.ByRef(ctx, "network", ref,
		gw.GetNetwork,
		gw.ListNetworks,
		func(n *openstack.Network) string { return n.Name },
	)
}

// resolveFlavor matches a flavor by ID or name. The compute API has no
// flavor lookup by name, so this always goes through the list.
func resolveFlavor(ctx context.Context, gw openstack.ComputeService, ref string) (string, error) {
	flavors, err := gw.ListFlavors(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list flavors: %w", err)
	}
	var matches []openstack.Flavor
	for _, f := range flavors {
		if f.ID == ref || strings.EqualFold(f.Name, ref) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return "", errdefs.Resource(nil, "no flavor found matching %q", ref)
	case 1:
		return matches[0].ID, nil
	default:
		return "", errdefs.Resource(nil, "multiple flavors found matching %q", ref)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
