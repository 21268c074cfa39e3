// Package config provides configuration structures and utilities for
// eksiscraper. It defines the scrape options (request pacing, retry
// limits, output locations), validation rules, and the optional YAML
// configuration file loader.
package config
