package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/trestle/internal/lease"
	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/reservation"
)

// LeaseCreateInput carries the lease create command's arguments.
type LeaseCreateInput struct {
	Name        string
	Nodes       int
	NodeType    string
	Devices     int
	MachineName string
	FloatingIPs int
	Duration    time.Duration
	Idempotent  bool
	Retry       bool
	Wait        bool
}

// LeaseCreate reserves hardware under a new lease.
func LeaseCreate(ctx context.Context, configPath string, in LeaseCreateInput) error {
	_, client, observer, err := setup(configPath)
	if err != nil {
		return err
	}

	requests, err := buildRequests(ctx, client, in)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return fmt.Errorf("nothing to reserve: specify --nodes, --devices, or --floating-ips")
	}

	l := lease.New(client, in.Name,
		reservation.LeaseWindow{Length: in.Duration},
		requests,
		lease.WithObserver(observer),
		lease.WithTimeouts(loadTimeouts()),
	)

	if err := l.Submit(ctx, lease.SubmitOptions{
		Idempotent:    in.Idempotent,
		RetryOnError:  in.Retry,
		WaitForActive: in.Wait,
	}); err != nil {
		return fmt.Errorf("lease creation failed: %w", err)
	}

	fmt.Print(renderLease(l))
	return nil
}

func buildRequests(ctx context.Context, client openstack.Client, in LeaseCreateInput) ([]openstack.ReservationRequest, error) {
	var requests []openstack.ReservationRequest

	if in.Nodes > 0 {
		req, err := reservation.Node(in.Nodes, reservation.NodeOptions{NodeType: in.NodeType})
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if in.Devices > 0 {
		req, err := reservation.Device(in.Devices, reservation.DeviceOptions{MachineName: in.MachineName})
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if in.FloatingIPs > 0 {
		req, err := reservation.FloatingIP(ctx, client, in.FloatingIPs)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// LeaseList prints the project's leases.
func LeaseList(ctx context.Context, configPath string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	leases, err := client.ListLeases(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leases: %w", err)
	}

	fmt.Print(renderLeaseTable(leases))
	return nil
}

// LeaseShow prints one lease with its reservations.
func LeaseShow(ctx context.Context, configPath, ref string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	l, err := lease.FromExisting(ctx, client, ref)
	if err != nil {
		return err
	}

	fmt.Print(renderLease(l))
	return nil
}

// LeaseDelete deletes a lease, releasing its hardware.
func LeaseDelete(ctx context.Context, configPath, ref string) error {
	_, client, observer, err := setup(configPath)
	if err != nil {
		return err
	}

	l, err := lease.FromExisting(ctx, client, ref, lease.WithObserver(observer))
	if err != nil {
		return err
	}

	if err := l.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete lease %s: %w", ref, err)
	}

	fmt.Printf("Lease %s deleted\n", l.Name)
	return nil
}

// LeaseProlong extends a lease's end date by the given duration.
func LeaseProlong(ctx context.Context, configPath, ref string, by time.Duration) error {
	_, client, observer, err := setup(configPath)
	if err != nil {
		return err
	}

	l, err := lease.FromExisting(ctx, client, ref, lease.WithObserver(observer))
	if err != nil {
		return err
	}

	if err := l.Prolong(ctx, by); err != nil {
		return err
	}

	fmt.Print(renderLease(l))
	return nil
}

// LeaseWait blocks until a lease becomes ACTIVE. A zero timeout uses the
// configured lease wait timeout.
func LeaseWait(ctx context.Context, configPath, ref string, timeout time.Duration) error {
	_, client, observer, err := setup(configPath)
	if err != nil {
		return err
	}

	timeouts := loadTimeouts()
	if timeout <= 0 {
		timeout = timeouts.LeaseWait
	}

	l, err := lease.FromExisting(ctx, client, ref,
		lease.WithObserver(observer),
		lease.WithTimeouts(timeouts),
	)
	if err != nil {
		return err
	}

	if err := l.Wait(ctx, lease.StatusActive, timeout); err != nil {
		return err
	}

	fmt.Print(renderLease(l))
	return nil
}
