package openstack

import (
	"github.com/imamik/trestle/internal/config"
	"github.com/imamik/trestle/internal/session"
)

// Service names used to resolve endpoints from the session.
const (
	serviceReservation = "reservation"
	serviceCompute     = "compute"
	serviceNetwork     = "network"
	serviceImage       = "image"
	serviceContainer   = "container"
	serviceShare       = "share"
)

// RealClient implements Client over an authenticated HTTP session.
type RealClient struct {
	sess     *session.Session
	timeouts *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// NewRealClient creates a RealClient over the given session.
func NewRealClient(sess *session.Session, opts ...ClientOption) *RealClient {
	c := &RealClient{
		sess:     sess,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the underlying session, for callers needing direct access.
func (c *RealClient) Session() *session.Session {
	return c.sess
}
