package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FileConfig holds optional run defaults loaded from an ironbatch.yaml file.
// Zero values mean "not set" and leave defaults or environment input alone.
type FileConfig struct {
	Count           int    `mapstructure:"count" yaml:"count"`
	Image           string `mapstructure:"image" yaml:"image"`
	Network         string `mapstructure:"network" yaml:"network"`
	ResourceClass   string `mapstructure:"resource_class" yaml:"resource_class"`
	DeployInterface string `mapstructure:"deploy_interface" yaml:"deploy_interface"`
	SSHKey          string `mapstructure:"ssh_key" yaml:"ssh_key"`
	InstancePrefix  string `mapstructure:"instance_prefix" yaml:"instance_prefix"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Parallelism     int    `mapstructure:"parallelism" yaml:"parallelism"`
}

// LoadFile reads and parses run defaults from a YAML file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg FileConfig
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}
