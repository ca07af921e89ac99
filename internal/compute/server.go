// Package compute implements the server factory: a dependent resource whose
// placement is determined by an already-active node reservation.
package compute

import (
	"context"
	"time"

	"github.com/imamik/trestle/internal/config"
	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/network"
	"github.com/imamik/trestle/internal/observe"
	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/resolve"
	"github.com/imamik/trestle/internal/util/waiter"
)

// Gateways are the service capabilities the server factory needs.
type Gateways interface {
	openstack.ComputeService
	openstack.NetworkService
	openstack.ImageService
}

// Remote server statuses.
const (
	statusActive = "ACTIVE"
	statusError  = "ERROR"
)

// CreateOptions describe a server to be created.
type CreateOptions struct {
	ImageID  string
	FlavorID string
	KeyName  string

	// NetworkID selects the NIC's network; empty boots without an
	// explicit network selection.
	NetworkID string

	// ReservationID is the node reservation the scheduler places this
	// server on. Required.
	ReservationID string

	Count int
}

// Server is a compute instance tied to a node reservation. Same lifecycle
// shape as a lease: draft, submit, wait, delete. Not safe for concurrent use.
type Server struct {
	Name      string
	ID        string
	Status    string
	Addresses map[string][]openstack.ServerAddress

	opts     CreateOptions
	gw       Gateways
	timeouts *config.Timeouts
	observer observe.Observer
}

// Option configures a Server.
type Option func(*Server)

// WithObserver sets the observer receiving lifecycle events.
func WithObserver(o observe.Observer) Option {
	return func(s *Server) {
		s.observer = o
	}
}

// WithTimeouts sets custom timeouts.
func WithTimeouts(t *config.Timeouts) Option {
	return func(s *Server) {
		s.timeouts = t
	}
}

// New constructs a draft server.
func New(gw Gateways, name string, opts CreateOptions, options ...Option) *Server {
	s := &Server{
		Name:     name,
		opts:     opts,
		gw:       gw,
		timeouts: config.LoadTimeouts(),
		observer: observe.NopObserver{},
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Submit creates the server remotely, threading the reservation ID into the
// scheduler hint so placement lands on the reserved hosts.
func (s *Server) Submit(ctx context.Context) error {
	if s.ID != "" {
		return errdefs.Resource(nil, "server %q has already been submitted as %s", s.Name, s.ID)
	}
	if s.opts.ReservationID == "" {
		return errdefs.InvalidArgument("a node reservation ID is required to create server %q", s.Name)
	}

	req := openstack.ServerCreateRequest{
		Name:          s.Name,
		ImageID:       s.opts.ImageID,
		FlavorID:      s.opts.FlavorID,
		KeyName:       s.opts.KeyName,
		SchedulerHint: map[string]string{"reservation": s.opts.ReservationID},
		Count:         s.opts.Count,
	}
	if s.opts.NetworkID != "" {
		req.Networks = []openstack.ServerNetwork{{UUID: s.opts.NetworkID}}
	}

	observe.ResourceCreating(s.observer, "server.submit", "server", s.Name)

	remote, err := s.gw.CreateServer(ctx, req)
	if err != nil {
		observe.ResourceFailed(s.observer, "server.submit", "server", s.Name, err)
		return err
	}
	s.populate(remote)

	observe.ResourceCreated(s.observer, "server.submit", "server", s.Name, s.ID)
	return nil
}

// Wait blocks until the server is ACTIVE. Bare-metal boots take minutes, so
// after a short fast-fail burst the wait sleeps through the typical
// provisioning window before resuming regular polling.
func (s *Server) Wait(ctx context.Context, timeout time.Duration) error {
	if s.ID == "" {
		return errdefs.Resource(nil, "cannot wait on server %q: not submitted yet", s.Name)
	}
	if timeout == 0 {
		timeout = s.timeouts.ServerWait
	}

	observe.Waiting(s.observer, "server.wait", s.Name, statusActive, timeout)

	done, err := waiter.PollTwoPhase(ctx, waiter.TwoPhaseOptions{
		BurstCount:    s.timeouts.BurstCount,
		BurstInterval: s.timeouts.BurstInterval,
		InitialSleep:  s.timeouts.InitialSleep,
		Interval:      s.timeouts.PollInterval,
		Timeout:       timeout,
		OnProgress: func(p waiter.Progress) {
			s.observer.Progress("server.wait", p.Percent)
		},
	}, func(ctx context.Context) (bool, error) {
		if err := s.Refresh(ctx); err != nil {
			return false, err
		}
		if s.Status == statusError {
			return false, errdefs.Service(nil, "server %s entered ERROR state", s.ID)
		}
		return s.Status == statusActive, nil
	})
	if err != nil {
		return err
	}
	if !done {
		return errdefs.Service(nil, "server %s did not become %s within %s", s.ID, statusActive, timeout)
	}
	return nil
}

// Refresh re-fetches the remote representation.
func (s *Server) Refresh(ctx context.Context) error {
	if s.ID == "" {
		return errdefs.Resource(nil, "cannot refresh server %q: not submitted yet", s.Name)
	}
	remote, err := s.gw.GetServer(ctx, s.ID)
	if err != nil {
		return err
	}
	s.populate(remote)
	return nil
}

// Delete tears the server down and invalidates local identity.
func (s *Server) Delete(ctx context.Context) error {
	if s.ID == "" {
		return errdefs.Resource(nil, "cannot delete server %q: not submitted yet", s.Name)
	}
	if err := s.gw.DeleteServer(ctx, s.ID); err != nil {
		return err
	}
	observe.ResourceDeleted(s.observer, "server.delete", "server", s.Name)
	s.ID = ""
	s.Status = ""
	return nil
}

// AssociateFloatingIP gives the server a public address, reusing an unbound
// project floating IP when one exists. The returned association reports
// whether the address was newly allocated.
func (s *Server) AssociateFloatingIP(ctx context.Context) (*network.Association, error) {
	if s.ID == "" {
		return nil, errdefs.Resource(nil, "cannot associate a floating IP with server %q: not submitted yet", s.Name)
	}
	assoc, err := network.AssociateFloatingIP(ctx, s.gw, s.ID)
	if err != nil {
		observe.ResourceFailed(s.observer, "server.associate_fip", "floating IP", s.Name, err)
		return nil, err
	}
	if assoc.Created {
		observe.ResourceCreated(s.observer, "server.associate_fip", "floating IP", s.Name, assoc.FloatingIP.ID)
	} else {
		observe.ResourceExists(s.observer, "server.associate_fip", "floating IP", s.Name, assoc.FloatingIP.ID)
	}
	return assoc, nil
}

func (s *Server) populate(remote *openstack.Server) {
	s.ID = remote.ID
	s.Status = remote.Status
	s.Addresses = remote.Addresses
	if remote.Name != "" {
		s.Name = remote.Name
	}
}

// Get resolves a server by ID or name against the compute service.
func Get(ctx context.Context, svc openstack.ComputeService, ref string) (*openstack.Server, error) {
	return resolve.ByRef(ctx, "server", ref,
		svc.GetServer,
		svc.ListServers,
		func(srv *openstack.Server) string { return srv.Name },
	)
}
