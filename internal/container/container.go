// Package container implements the container factory: a dependent resource
// placed on an already-active device reservation.
package container

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

// Gateways are the service capabilities the container factory needs.
type Gateways interface {
	openstack.ContainerService
	openstack.NetworkService
}

// Remote container statuses.
const (
	StatusCreated = "Created"
	StatusRunning = "Running"
	statusError   = "Error"
)

// CreateOptions describe a container to be created.
type CreateOptions struct {
	Image       string
	ImageDriver string
	Command     []string
	Environment map[string]string

	// ExposedPorts lists port specs like "8080/tcp".
	ExposedPorts []string

	Runtime        string
	NetworkIDs     []string
	DeviceProfiles []string

	// ReservationID is the device reservation the scheduler places this
	// container on. Required.
	ReservationID string
}

// Container is a containerized workload on a reserved edge device. Same
// lifecycle shape as a lease: draft, submit, wait, delete. Not safe for
// concurrent use.
type Container struct {
	Name      string
	UUID      string
	Status    string
	Addresses map[string][]openstack.ContainerAddress

	opts     CreateOptions
	gw       Gateways
	timeouts *config.Timeouts
	observer observe.Observer
}

// Option configures a Container.
type Option func(*Container)

// WithObserver sets the observer receiving lifecycle events.
func WithObserver(o observe.Observer) Option {
	return func(c *Container) {
		c.observer = o
	}
}

// WithTimeouts sets custom timeouts.
func WithTimeouts(t *config.Timeouts) Option {
	return func(c *Container) {
		c.timeouts = t
	}
}

// New constructs a draft container.
func New(gw Gateways, name string, opts CreateOptions, options ...Option) *Container {
	c := &Container{
		Name:     name,
		opts:     opts,
		gw:       gw,
		timeouts: config.LoadTimeouts(),
		observer: observe.NopObserver{},
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// Submit creates the container remotely in Created state, threading the
// reservation ID into the scheduler hint.
func (c *Container) Submit(ctx context.Context) error {
	if c.UUID != "" {
		return errdefs.Resource(nil, "container %q has already been submitted as %s", c.Name, c.UUID)
	}
	if c.opts.ReservationID == "" {
		return errdefs.InvalidArgument("a device reservation ID is required to create container %q", c.Name)
	}
	if c.opts.Image == "" {
		return errdefs.InvalidArgument("an image is required to create container %q", c.Name)
	}

	exposed := make(map[string]any, len(c.opts.ExposedPorts))
	for _, p := range c.opts.ExposedPorts {
		exposed[p] = struct{}{}
	}
	nets := make([]openstack.ContainerNet, 0, len(c.opts.NetworkIDs))
	for _, id := range c.opts.NetworkIDs {
		nets = append(nets, openstack.ContainerNet{Network: id})
	}

	req := openstack.ContainerCreateRequest{
		Name:           c.Name,
		Image:          c.opts.Image,
		ImageDriver:    c.opts.ImageDriver,
		Command:        c.opts.Command,
		Environment:    c.opts.Environment,
		ExposedPorts:   exposed,
		Runtime:        c.opts.Runtime,
		Nets:           nets,
		DeviceProfiles: c.opts.DeviceProfiles,
		Hints:          map[string]string{"reservation": c.opts.ReservationID},
	}
	if len(exposed) == 0 {
		req.ExposedPorts = nil
	}

	observe.ResourceCreating(c.observer, "container.submit", "container", c.Name)

	remote, err := c.gw.CreateContainer(ctx, req)
	if err != nil {
		observe.ResourceFailed(c.observer, "container.submit", "container", c.Name, err)
		return err
	}
	c.populate(remote)

	observe.ResourceCreated(c.observer, "container.submit", "container", c.Name, c.UUID)
	return nil
}

// Start starts a created container.
func (c *Container) Start(ctx context.Context) error {
	if c.UUID == "" {
		return errdefs.Resource(nil, "cannot start container %q: not submitted yet", c.Name)
	}
	return c.gw.StartContainer(ctx, c.UUID)
}

// Wait blocks until the container reaches the target status, using the same
// two-phase policy as servers: container images can take minutes to pull on
// an edge device.
func (c *Container) Wait(ctx context.Context, target string, timeout time.Duration) error {
	if c.UUID == "" {
		return errdefs.Resource(nil, "cannot wait on container %q: not submitted yet", c.Name)
	}
	if timeout == 0 {
		timeout = c.timeouts.ContainerWait
	}

	observe.Waiting(c.observer, "container.wait", c.Name, target, timeout)

	done, err := waiter.PollTwoPhase(ctx, waiter.TwoPhaseOptions{
		BurstCount:    c.timeouts.BurstCount,
		BurstInterval: c.timeouts.BurstInterval,
		InitialSleep:  c.timeouts.InitialSleep,
		Interval:      c.timeouts.PollInterval,
		Timeout:       timeout,
		OnProgress: func(p waiter.Progress) {
			c.observer.Progress("container.wait", p.Percent)
		},
	}, func(ctx context.Context) (bool, error) {
		if err := c.Refresh(ctx); err != nil {
			return false, err
		}
		if c.Status == statusError {
			return false, errdefs.Service(nil, "container %s entered Error state", c.UUID)
		}
		return c.Status == target, nil
	})
	if err != nil {
		return err
	}
	if !done {
		return errdefs.Service(nil, "container %s did not become %s within %s", c.UUID, target, timeout)
	}
	return nil
}

// Run submits the container, waits for it to be created, starts it, and
// waits until it is running.
func (c *Container) Run(ctx context.Context, timeout time.Duration) error {
	if err := c.Submit(ctx); err != nil {
		return err
	}
	if err := c.Wait(ctx, StatusCreated, timeout); err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		return err
	}
	return c.Wait(ctx, StatusRunning, timeout)
}

// Refresh re-fetches the remote representation.
func (c *Container) Refresh(ctx context.Context) error {
	if c.UUID == "" {
		return errdefs.Resource(nil, "cannot refresh container %q: not submitted yet", c.Name)
	}
	remote, err := c.gw.GetContainer(ctx, c.UUID)
	if err != nil {
		return err
	}
	c.populate(remote)
	return nil
}

// Delete tears the container down, stopping it first if needed, and
// invalidates local identity.
func (c *Container) Delete(ctx context.Context) error {
	if c.UUID == "" {
		return errdefs.Resource(nil, "cannot delete container %q: not submitted yet", c.Name)
	}
	if err := c.gw.DeleteContainer(ctx, c.UUID, true); err != nil {
		return err
	}
	observe.ResourceDeleted(c.observer, "container.delete", "container", c.Name)
	c.UUID = ""
	c.Status = ""
	return nil
}

// Execute runs a one-off command inside the running container.
func (c *Container) Execute(ctx context.Context, command string) (*openstack.ExecResult, error) {
	if c.UUID == "" {
		return nil, errdefs.Resource(nil, "cannot execute in container %q: not submitted yet", c.Name)
	}
	return c.gw.Execute(ctx, c.UUID, command)
}

// Logs fetches the container's combined output.
func (c *Container) Logs(ctx context.Context) (string, error) {
	if c.UUID == "" {
		return "", errdefs.Resource(nil, "cannot fetch logs for container %q: not submitted yet", c.Name)
	}
	return c.gw.Logs(ctx, c.UUID, true, true)
}

// Upload packs the given files into a tar archive and extracts them at path
// inside the container.
func (c *Container) Upload(ctx context.Context, path string, files map[string][]byte) error {
	if c.UUID == "" {
		return errdefs.Resource(nil, "cannot upload to container %q: not submitted yet", c.Name)
	}
	archive, err := packArchive(files)
	if err != nil {
		return err
	}
	return c.gw.PutArchive(ctx, c.UUID, path, archive)
}

// Download fetches path inside the container and unpacks the returned tar
// archive into a file map keyed by archive member name.
func (c *Container) Download(ctx context.Context, path string) (map[string][]byte, error) {
	if c.UUID == "" {
		return nil, errdefs.Resource(nil, "cannot download from container %q: not submitted yet", c.Name)
	}
	archive, err := c.gw.GetArchive(ctx, c.UUID, path)
	if err != nil {
		return nil, err
	}
	return unpackArchive(archive)
}

// AssociateFloatingIP gives the container a public address, reusing an
// unbound project floating IP when one exists.
func (c *Container) AssociateFloatingIP(ctx context.Context) (*network.Association, error) {
	if c.UUID == "" {
		return nil, errdefs.Resource(nil, "cannot associate a floating IP with container %q: not submitted yet", c.Name)
	}
	assoc, err := network.AssociateFloatingIP(ctx, c.gw, c.UUID)
	if err != nil {
		observe.ResourceFailed(c.observer, "container.associate_fip", "floating IP", c.Name, err)
		return nil, err
	}
	if assoc.Created {
		observe.ResourceCreated(c.observer, "container.associate_fip", "floating IP", c.Name, assoc.FloatingIP.ID)
	} else {
		observe.ResourceExists(c.observer, "container.associate_fip", "floating IP", c.Name, assoc.FloatingIP.ID)
	}
	return assoc, nil
}

func (c *Container) populate(remote *openstack.Container) {
	c.UUID = remote.UUID
	c.Status = remote.Status
	c.Addresses = remote.Addresses
	if remote.Name != "" {
		c.Name = remote.Name
	}
}

// Get resolves a container by UUID or name against the container service.
func Get(ctx context.Context, svc openstack.ContainerService, ref string) (*openstack.Container, error) {
	return resolve.ByRef(ctx, "container", ref,
		svc.GetContainer,
		svc.ListContainers,
		func(ct *openstack.Container) string { return ct.Name },
	)
}
