package openstack

import (
	"errors"

	"github.com/gophercloud/gophercloud"
)

// IsNotFound checks if an error indicates a resource was not found.
// Covers both a raw 404 from the API and the name-lookup miss returned
// by the resolution helpers.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound gophercloud.ErrDefault404
	if errors.As(err, &notFound) {
		return true
	}
	var resNotFound gophercloud.ErrResourceNotFound
	return errors.As(err, &resNotFound)
}

// IsAmbiguous checks if an error indicates a name matched more than one
// resource, in which case the caller must pass an ID instead.
func IsAmbiguous(err error) bool {
	if err == nil {
		return false
	}
	var multiple gophercloud.ErrMultipleResourcesFound
	return errors.As(err, &multiple)
}

// IsUnauthorized checks if an error indicates failed or expired credentials.
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	var unauthorized gophercloud.ErrDefault401
	return errors.As(err, &unauthorized)
}
