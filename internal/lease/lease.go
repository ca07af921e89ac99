// Package lease implements the client-side lease lifecycle: draft
// construction, submission with idempotent and retry-on-error semantics,
// bounded waiting for remote state transitions, refresh, and deletion.
package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/trestle/internal/config"
	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/observe"
	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/reservation"
	"github.com/imamik/trestle/internal/resolve"
	"github.com/imamik/trestle/internal/util/retry"
	"github.com/imamik/trestle/internal/util/waiter"
)

// Status is a lease lifecycle state. DRAFT exists only client-side; the
// remaining states mirror the reservation service.
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusPending    Status = "PENDING"
	StatusActive     Status = "ACTIVE"
	StatusTerminated Status = "TERMINATED"
	StatusError      Status = "ERROR"
)

// Reservations holds a lease's reservation records partitioned by resource
// type. Records with an unrecognized type are retained under Other so new
// reservation kinds are never silently lost.
type Reservations struct {
	Node       []openstack.ReservationRecord
	Network    []openstack.ReservationRecord
	FloatingIP []openstack.ReservationRecord
	Device     []openstack.ReservationRecord
	Flavor     []openstack.ReservationRecord
	Other      []openstack.ReservationRecord
}

// Lease is the aggregate root of a reservation. It is constructed client-side
// in DRAFT state and acquires identity on submission. Once submitted, the
// remote service owns the truth; local fields are a cache repopulated by
// Refresh. Not safe for concurrent use.
type Lease struct {
	Name      string
	ID        string
	Status    Status
	StartDate string
	EndDate   string
	UserID    string
	ProjectID string
	CreatedAt string

	Reservations Reservations

	requests []openstack.ReservationRequest
	window   reservation.LeaseWindow

	svc      openstack.ReservationService
	timeouts *config.Timeouts
	observer observe.Observer
}

// Option configures a Lease.
type Option func(*Lease)

// WithObserver sets the observer receiving lifecycle events.
func WithObserver(o observe.Observer) Option {
	return func(l *Lease) {
		l.observer = o
	}
}

// WithTimeouts sets custom timeouts.
func WithTimeouts(t *config.Timeouts) Option {
	return func(l *Lease) {
		l.timeouts = t
	}
}

// New constructs a draft lease holding the given reservation requests. The
// draft has no remote identity until Submit is called.
func New(svc openstack.ReservationService, name string, window reservation.LeaseWindow, requests []openstack.ReservationRequest, opts ...Option) *Lease {
	l := &Lease{
		Name:     name,
		Status:   StatusDraft,
		requests: requests,
		window:   window,
		svc:      svc,
		timeouts: config.LoadTimeouts(),
		observer: observe.NopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SubmitOptions controls Submit behavior.
type SubmitOptions struct {
	// Idempotent adopts an existing non-terminated lease with the same
	// name instead of creating a duplicate, making re-runs safe.
	Idempotent bool

	// RetryOnError retries a failed creation up to the configured attempt
	// budget, best-effort deleting the partial lease between attempts.
	RetryOnError bool

	// WaitForActive blocks until the lease reaches ACTIVE after creation.
	WaitForActive bool

	// WaitTimeout bounds the wait; zero uses the configured default.
	WaitTimeout time.Duration
}

// Submit creates the lease remotely and populates local state from the
// service's response.
func (l *Lease) Submit(ctx context.Context, opts SubmitOptions) error {
	if l.ID != "" {
		return errdefs.Resource(nil, "lease %q has already been submitted as %s", l.Name, l.ID)
	}

	if opts.Idempotent {
		existing, err := l.findByName(ctx)
		if err != nil {
			return err
		}
		if existing != nil && Status(existing.Status) != StatusTerminated {
			l.populate(existing)
			observe.ResourceExists(l.observer, "lease.submit", "lease", l.Name, l.ID)
			return l.maybeWait(ctx, opts)
		}
	}

	payload, err := reservation.LeaseCreateArgs(l.Name, l.window, l.requests)
	if err != nil {
		return err
	}

	observe.ResourceCreating(l.observer, "lease.submit", "lease", l.Name)

	create := func() error {
		remote, err := l.svc.CreateLease(ctx, payload)
		if err != nil {
			return openstack.AnnotateCapacity(err, payload.Reservations)
		}
		l.populate(remote)
		return nil
	}

	if opts.RetryOnError {
		cleanup := func() error {
			existing, err := l.findByName(ctx)
			if err != nil || existing == nil {
				return err
			}
			return l.svc.DeleteLease(ctx, existing.ID)
		}
		err = retry.DoWithCleanup(ctx, l.timeouts.SubmitAttempts, create, cleanup)
	} else {
		err = create()
	}
	if err != nil {
		observe.ResourceFailed(l.observer, "lease.submit", "lease", l.Name, err)
		return err
	}

	observe.ResourceCreated(l.observer, "lease.submit", "lease", l.Name, l.ID)
	return l.maybeWait(ctx, opts)
}

func (l *Lease) maybeWait(ctx context.Context, opts SubmitOptions) error {
	if !opts.WaitForActive {
		return nil
	}
	timeout := opts.WaitTimeout
	if timeout == 0 {
		timeout = l.timeouts.LeaseWait
	}
	return l.Wait(ctx, StatusActive, timeout)
}

// Wait polls the remote status at the configured interval until the target
// status is observed. An ERROR status or an elapsed timeout both surface as
// a ServiceError; the wait never blocks meaningfully past the timeout.
func (l *Lease) Wait(ctx context.Context, target Status, timeout time.Duration) error {
	if l.ID == "" {
		return errdefs.Resource(nil, "cannot wait on lease %q: not submitted yet", l.Name)
	}

	observe.Waiting(l.observer, "lease.wait", l.Name, string(target), timeout)

	done, err := waiter.Poll(ctx, waiter.Options{
		Interval: l.timeouts.PollInterval,
		Timeout:  timeout,
		OnProgress: func(p waiter.Progress) {
			l.observer.Progress("lease.wait", p.Percent)
		},
	}, func(ctx context.Context) (bool, error) {
		if err := l.Refresh(ctx); err != nil {
			return false, err
		}
		if l.Status == StatusError {
			return false, errdefs.Service(nil, "lease %s entered ERROR state", l.ID)
		}
		return l.Status == target, nil
	})
	if err != nil {
		return err
	}
	if !done {
		return errdefs.Service(nil, "lease %s did not reach %s within %s", l.ID, target, timeout)
	}
	return nil
}

// Refresh re-fetches the remote representation and repopulates all cached
// fields, including the partitioned reservation lists.
func (l *Lease) Refresh(ctx context.Context) error {
	if l.ID == "" {
		return errdefs.Resource(nil, "cannot refresh lease %q: not submitted yet", l.Name)
	}
	remote, err := l.svc.GetLease(ctx, l.ID)
	if err != nil {
		return err
	}
	l.populate(remote)
	return nil
}

// Prolong extends the lease's end date by the given duration. The service
// takes the extension as a minutes string on the update call.
func (l *Lease) Prolong(ctx context.Context, by time.Duration) error {
	if l.ID == "" {
		return errdefs.Resource(nil, "cannot prolong lease %q: not submitted yet", l.Name)
	}
	if by < time.Minute {
		return errdefs.InvalidArgument("prolong duration must be at least one minute, got %s", by)
	}
	remote, err := l.svc.UpdateLease(ctx, l.ID, l.Name, fmt.Sprintf("%dm", int(by/time.Minute)))
	if err != nil {
		return fmt.Errorf("failed to prolong lease %s: %w", l.ID, err)
	}
	l.populate(remote)
	return nil
}

// Delete tears the lease down remotely, then clears local identity.
func (l *Lease) Delete(ctx context.Context) error {
	if l.ID == "" {
		return errdefs.Resource(nil, "cannot delete lease %q: not submitted yet", l.Name)
	}
	if err := l.svc.DeleteLease(ctx, l.ID); err != nil {
		return err
	}
	observe.ResourceDeleted(l.observer, "lease.delete", "lease", l.Name)
	l.ID = ""
	l.Status = StatusTerminated
	return nil
}

// NodeReservationID returns the ID of the lease's first node reservation,
// the placement handle dependent servers need.
func (l *Lease) NodeReservationID() (string, error) {
	if len(l.Reservations.Node) == 0 {
		return "", errdefs.Resource(nil, "lease %q has no node reservation", l.Name)
	}
	return l.Reservations.Node[0].ID, nil
}

// DeviceReservationID returns the ID of the lease's first device
// reservation, used as the container placement hint.
func (l *Lease) DeviceReservationID() (string, error) {
	if len(l.Reservations.Device) == 0 {
		return "", errdefs.Resource(nil, "lease %q has no device reservation", l.Name)
	}
	return l.Reservations.Device[0].ID, nil
}

func (l *Lease) populate(remote *openstack.Lease) {
	l.ID = remote.ID
	l.Name = remote.Name
	l.Status = Status(remote.Status)
	l.StartDate = remote.StartDate
	l.EndDate = remote.EndDate
	l.UserID = remote.UserID
	l.ProjectID = remote.ProjectID
	l.CreatedAt = remote.CreatedAt
	l.Reservations = partition(remote.Reservations)
}

// findByName returns the lease with this draft's name, or nil when none
// exists. Duplicate names fail loudly.
func (l *Lease) findByName(ctx context.Context) (*openstack.Lease, error) {
	all, err := l.svc.ListLeases(ctx)
	if err != nil {
		return nil, err
	}
	var found *openstack.Lease
	for i := range all {
		if all[i].Name == l.Name {
			if found != nil {
				return nil, errdefs.Resource(nil, "multiple leases named %q, use the ID instead", l.Name)
			}
			found = &all[i]
		}
	}
	return found, nil
}

func partition(records []openstack.ReservationRecord) Reservations {
	var r Reservations
	for _, rec := range records {
		switch rec.ResourceType {
		case openstack.ResourceTypeNode:
			r.Node = append(r.Node, rec)
		case openstack.ResourceTypeNetwork:
			r.Network = append(r.Network, rec)
		case openstack.ResourceTypeFloatingIP:
			r.FloatingIP = append(r.FloatingIP, rec)
		case openstack.ResourceTypeDevice:
			r.Device = append(r.Device, rec)
		case openstack.ResourceTypeFlavor:
			r.Flavor = append(r.Flavor, rec)
		default:
			r.Other = append(r.Other, rec)
		}
	}
	return r
}

// Get resolves a lease by ID or name against the reservation service.
func Get(ctx context.Context, svc openstack.ReservationService, ref string) (*openstack.Lease, error) {
	return resolve.ByRef(ctx, "lease", ref,
		svc.GetLease,
		svc.ListLeases,
		func(ls *openstack.Lease) string { return ls.Name },
	)
}

// FromExisting adopts an already-created lease by ID or name.
func FromExisting(ctx context.Context, svc openstack.ReservationService, ref string, opts ...Option) (*Lease, error) {
	remote, err := Get(ctx, svc, ref)
	if err != nil {
		return nil, err
	}
	l := New(svc, remote.Name, reservation.LeaseWindow{}, nil, opts...)
	l.populate(remote)
	return l, nil
}
