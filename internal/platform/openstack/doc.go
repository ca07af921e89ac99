// Package openstack provides thin authenticated gateways to the testbed's
// OpenStack-family services: reservation, compute, network, image,
// container, and share.
//
// The gateways are plain request/response mappings with no retry or
// state-machine logic of their own; lifecycle orchestration lives in the
// lease, compute, and container packages. Each service is defined as an
// interface, implemented by RealClient (JSON over HTTP through an
// authenticated session) and by MockClient (overridable function fields)
// for tests.
package openstack
