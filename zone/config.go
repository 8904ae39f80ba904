// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zone

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config names the offsets an application uses.
//
// A typical file looks like
//
//	default: shop
//	aliases:
//	  shop: Europe/Berlin
//	  server: UTC
//	  warehouse: "+05:30"
type Config struct {
	// Default is the name resolved by Registry.Default. Empty means Local.
	Default string `yaml:"default"`
	// Aliases maps application names to other names: aliases, "UTC",
	// "Local", numeric offsets or IANA timezone names.
	Aliases map[string]string `yaml:"aliases"`
}

// LoadConfig decodes and validates a YAML Config. Unknown keys are an error.
// An empty document yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("zone: decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfigFile is LoadConfig for the file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("zone: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks that aliases are non-empty and acyclic. It does not check
// that names exist in the timezone database; see Registry.Preload.
func (c Config) Validate() error {
	var errs []error
	for _, name := range c.names() {
		target := c.Aliases[name]
		if name == "" {
			errs = append(errs, errors.New("zone: empty alias name"))
			continue
		}
		if target == "" {
			errs = append(errs, fmt.Errorf("zone: alias %q has no target", name))
			continue
		}
		if _, err := c.resolveAlias(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// names returns the alias names, sorted.
func (c Config) names() []string {
	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveAlias follows aliases starting at name and returns the first name
// that is not an alias.
func (c Config) resolveAlias(name string) (string, error) {
	seen := make(map[string]bool)
	for {
		target, ok := c.Aliases[name]
		if !ok {
			return name, nil
		}
		if seen[name] {
			return "", fmt.Errorf("zone: alias cycle through %q: %w", name, ErrAliasCycle)
		}
		seen[name] = true
		name = target
	}
}
