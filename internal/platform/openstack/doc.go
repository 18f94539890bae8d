// Package openstack wraps the OpenStack control-plane APIs behind the
// ControlPlane interface consumed by the provisioning core.
//
// RealClient talks to a live control plane through per-service gophercloud
// clients (compute, image, network, baremetal). The provisioning packages only
// depend on the ControlPlane interface, so tests substitute scripted fakes.
package openstack
