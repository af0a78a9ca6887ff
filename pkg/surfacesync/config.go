package surfacesync

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Hosts     []string `env:"KNOWN_HOSTS" envSeparator:"," envDefault:"bbs.nga.cn,ngabbs.com,nga.178.com"`
	HostsFile string   `env:"KNOWN_HOSTS_FILE"`
}

func DefaultConfig() Config {
	return Config{Hosts: []string{"bbs.nga.cn", "ngabbs.com", "nga.178.com"}}
}

// KnownHosts returns the configured hosts followed by those of HostsFile.
func (c Config) KnownHosts() ([]string, error) {
	hosts := append([]string(nil), c.Hosts...)
	if c.HostsFile == "" {
		return hosts, nil
	}
	fromFile, err := LoadHostsFile(c.HostsFile)
	if err != nil {
		return nil, err
	}
	return append(hosts, fromFile...), nil
}

type hostsFile struct {
	Hosts []string `yaml:"hosts"`
}

// LoadHostsFile reads a YAML document with a top level "hosts" list.
func LoadHostsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadHostsFile, err)
	}
	var f hostsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseHostsFile, err)
	}
	return f.Hosts, nil
}
