package am

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/abisol/errors"
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !identifier.MatchString(c.Generate.Name) {
		return errors.Newf("generate.name must be a Solidity identifier, got %q", c.Generate.Name)
	}

	if _, err := semver.NewConstraint(c.Generate.SolidityVersion); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "generate.solidity_version %q", c.Generate.SolidityVersion),
			`write a semver range such as "^0.8.0" or ">=0.6.0 <0.9.0"`,
		)
	}

	// Empty falls back to the built-in shim name
	if c.Generate.ShimContainer != "" && !identifier.MatchString(c.Generate.ShimContainer) {
		return errors.Newf("generate.shim_container must be a Solidity identifier, got %q", c.Generate.ShimContainer)
	}

	if c.Generate.License == "" || strings.ContainsAny(c.Generate.License, "\r\n") {
		return errors.Newf("generate.license must be a single-line SPDX identifier, got %q", c.Generate.License)
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}
