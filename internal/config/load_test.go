package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ironbatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTempConfig(t, `
count: 4
image: ubuntu-22.04
network: provisioning-net
resource_class: baremetal.general
deploy_interface: ansible
ssh_key: ops-key
instance_prefix: rack7
timeout_seconds: 1800
parallelism: 5
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Count)
	assert.Equal(t, "ubuntu-22.04", cfg.Image)
	assert.Equal(t, "provisioning-net", cfg.Network)
	assert.Equal(t, "baremetal.general", cfg.ResourceClass)
	assert.Equal(t, "ansible", cfg.DeployInterface)
	assert.Equal(t, "ops-key", cfg.SSHKey)
	assert.Equal(t, "rack7", cfg.InstancePrefix)
	assert.Equal(t, 1800, cfg.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Parallelism)
}

func TestLoadFile_PartialConfig(t *testing.T) {
	path := writeTempConfig(t, "image: ubuntu-22.04\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ubuntu-22.04", cfg.Image)
	assert.Zero(t, cfg.Count)
	assert.Empty(t, cfg.InstancePrefix)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "count: [not an int\n")

	_, err := LoadFile(path)
	assert.Error(t, err)
}
