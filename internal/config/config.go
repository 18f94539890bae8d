package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ironbatch/ironbatch/internal/provisioning"
)

// Defaults for optional settings.
const (
	DefaultDeployInterface = "direct"
	DefaultInstancePrefix  = "bm"
	DefaultTimeoutSeconds  = 3600
	DefaultParallelism     = 10
)

// ProvisionRequest is the immutable configuration for one provisioning run.
type ProvisionRequest struct {
	Count           int
	Image           string
	Network         string
	ResourceClass   string
	DeployInterface string
	SSHKey          string
	InstancePrefix  string
	TimeoutSeconds  int
	Parallelism     int
	DryRun          bool
}

// Overrides carries the flag values the user set explicitly. Nil fields were
// not set and leave the underlying value untouched.
type Overrides struct {
	Count           *int
	Image           *string
	Network         *string
	ResourceClass   *string
	DeployInterface *string
	SSHKey          *string
	InstancePrefix  *string
	TimeoutSeconds  *int
	Parallelism     *int
	DryRun          *bool
}

// Defaults returns a request carrying only the built-in defaults.
func Defaults() ProvisionRequest {
	return ProvisionRequest{
		DeployInterface: DefaultDeployInterface,
		InstancePrefix:  DefaultInstancePrefix,
		TimeoutSeconds:  DefaultTimeoutSeconds,
		Parallelism:     DefaultParallelism,
	}
}

// Build layers file, environment and flag input over the defaults and
// returns the finished request.
func Build(file *FileConfig, overrides Overrides) ProvisionRequest {
	req := Defaults()
	req.applyFile(file)
	req.applyEnv()
	req.applyOverrides(overrides)
	return req
}

func (r *ProvisionRequest) applyFile(file *FileConfig) {
	if file == nil {
		return
	}
	if file.Count != 0 {
		r.Count = file.Count
	}
	if file.Image != "" {
		r.Image = file.Image
	}
	if file.Network != "" {
		r.Network = file.Network
	}
	if file.ResourceClass != "" {
		r.ResourceClass = file.ResourceClass
	}
	if file.DeployInterface != "" {
		r.DeployInterface = file.DeployInterface
	}
	if file.SSHKey != "" {
		r.SSHKey = file.SSHKey
	}
	if file.InstancePrefix != "" {
		r.InstancePrefix = file.InstancePrefix
	}
	if file.TimeoutSeconds != 0 {
		r.TimeoutSeconds = file.TimeoutSeconds
	}
	if file.Parallelism != 0 {
		r.Parallelism = file.Parallelism
	}
}

// applyEnv fills the request from the IRONBATCH_* environment. Unset or
// unparsable variables leave the current value in place.
//
// Environment Variables:
//   - IRONBATCH_COUNT
//   - IRONBATCH_IMAGE
//   - IRONBATCH_NETWORK
//   - IRONBATCH_RESOURCE_CLASS
//   - IRONBATCH_DEPLOY_INTERFACE
//   - IRONBATCH_SSH_KEY
//   - IRONBATCH_INSTANCE_PREFIX
//   - IRONBATCH_TIMEOUT_SECONDS
//   - IRONBATCH_PARALLELISM
//   - IRONBATCH_DRY_RUN
func (r *ProvisionRequest) applyEnv() {
	r.Count = envInt("IRONBATCH_COUNT", r.Count)
	r.Image = envString("IRONBATCH_IMAGE", r.Image)
	r.Network = envString("IRONBATCH_NETWORK", r.Network)
	r.ResourceClass = envString("IRONBATCH_RESOURCE_CLASS", r.ResourceClass)
	r.DeployInterface = envString("IRONBATCH_DEPLOY_INTERFACE", r.DeployInterface)
	r.SSHKey = envString("IRONBATCH_SSH_KEY", r.SSHKey)
	r.InstancePrefix = envString("IRONBATCH_INSTANCE_PREFIX", r.InstancePrefix)
	r.TimeoutSeconds = envInt("IRONBATCH_TIMEOUT_SECONDS", r.TimeoutSeconds)
	r.Parallelism = envInt("IRONBATCH_PARALLELISM", r.Parallelism)
	r.DryRun = envBool("IRONBATCH_DRY_RUN", r.DryRun)
}

func (r *ProvisionRequest) applyOverrides(o Overrides) {
	if o.Count != nil {
		r.Count = *o.Count
	}
	if o.Image != nil {
		r.Image = *o.Image
	}
	if o.Network != nil {
		r.Network = *o.Network
	}
	if o.ResourceClass != nil {
		r.ResourceClass = *o.ResourceClass
	}
	if o.DeployInterface != nil {
		r.DeployInterface = *o.DeployInterface
	}
	if o.SSHKey != nil {
		r.SSHKey = *o.SSHKey
	}
	if o.InstancePrefix != nil {
		r.InstancePrefix = *o.InstancePrefix
	}
	if o.TimeoutSeconds != nil {
		r.TimeoutSeconds = *o.TimeoutSeconds
	}
	if o.Parallelism != nil {
		r.Parallelism = *o.Parallelism
	}
	if o.DryRun != nil {
		r.DryRun = *o.DryRun
	}
}

// Timeout returns the per-instance readiness deadline.
func (r *ProvisionRequest) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Validate checks the request for errors that must abort the run before any
// provisioning starts.
func (r *ProvisionRequest) Validate() error {
	if r.Count < 1 {
		return &provisioning.InvalidRequestError{Reason: fmt.Sprintf("count must be at least 1, got %d", r.Count)}
	}
	if r.Image == "" {
		return &provisioning.InvalidRequestError{Reason: "image is required"}
	}
	if r.Network == "" {
		return &provisioning.InvalidRequestError{Reason: "network is required"}
	}
	if r.InstancePrefix == "" {
		return &provisioning.InvalidRequestError{Reason: "instance prefix must not be empty"}
	}
	if r.TimeoutSeconds < 1 {
		return &provisioning.InvalidRequestError{Reason: fmt.Sprintf("timeout must be at least 1 second, got %d", r.TimeoutSeconds)}
	}
	if r.Parallelism < 1 {
		return &provisioning.InvalidRequestError{Reason: fmt.Sprintf("parallelism must be at least 1, got %d", r.Parallelism)}
	}
	return nil
}

// envString reads a string from an environment variable, falling back to the
// given value when unset.
func envString(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

// envInt reads an integer from an environment variable. An unset or
// unparsable value falls back.
func envInt(envVar string, fallback int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return i
}

// envBool reads a boolean from an environment variable. An unset or
// unparsable value falls back.
func envBool(envVar string, fallback bool) bool {
	val := os.Getenv(envVar)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
