package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML site file. Each site entry binds URLs
// under a prefix to a normalizer and an output destination, so one
// binary can serve several registered sites.
type Config struct {
	Sites []SiteConfig `yaml:"sites"`
}

// SiteConfig describes one registered site.
type SiteConfig struct {
	Name      string `yaml:"name"`
	URLPrefix string `yaml:"url_prefix"`
	// Normalizer is "generic" (default) or "bcra".
	Normalizer string `yaml:"normalizer"`
	// Output is a file path, or "-" for stdout (default).
	Output string `yaml:"output"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for i, s := range cfg.Sites {
		if s.URLPrefix == "" {
			return nil, fmt.Errorf("config %s: site %d (%s) has no url_prefix", path, i, s.Name)
		}
	}
	return &cfg, nil
}

// siteFor returns the first site whose prefix matches the URL, or nil.
func (c *Config) siteFor(url string) *SiteConfig {
	if c == nil {
		return nil
	}
	for i := range c.Sites {
		if strings.HasPrefix(url, c.Sites[i].URLPrefix) {
			return &c.Sites[i]
		}
	}
	return nil
}
