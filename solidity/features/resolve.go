// Package features resolves which Solidity syntax features hold across a
// requested compiler version range.
//
// Each feature is a step function over the version axis (see Table). A range
// is resolved by intersecting it with every step: a single agreeing value is
// Definite, disagreeing values are Mixed, no intersection is NotApplicable.
// Ambiguity is not an error here; callers fail only when they actually need
// a concrete value.
package features

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/logger"
)

// Features maps each known feature to its resolved value for one range
type Features map[Name]Value

// Get returns the value for name, NotApplicable when absent
func (f Features) Get(name Name) Value {
	return f[name]
}

// Names returns the resolved feature names in sorted order
func (f Features) Names() []Name {
	names := make([]Name, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// axis is the finite grid of release-shaped versions used to decide whether
// two ranges intersect. It covers every 0.x.y and 1.x.y Solidity could ship.
var axis = buildAxis()

func buildAxis() []*semver.Version {
	var versions []*semver.Version
	for minor := uint64(0); minor <= 12; minor++ {
		for patch := uint64(0); patch <= 60; patch++ {
			versions = append(versions, semver.New(0, minor, patch, "", ""))
		}
	}
	for minor := uint64(0); minor <= 9; minor++ {
		for patch := uint64(0); patch <= 30; patch++ {
			versions = append(versions, semver.New(1, minor, patch, "", ""))
		}
	}
	return versions
}

// Resolve resolves every feature in Table for the version range
func Resolve(versionRange string) (Features, error) {
	return resolveWith(Table, versionRange)
}

// resolveWith resolves every feature of table for the version range
func resolveWith(table []Feature, versionRange string) (Features, error) {
	requested, err := semver.NewConstraint(versionRange)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidRange, "%q: %s", versionRange, err.Error()),
			`use semver range syntax, e.g. "^0.8.0" or ">=0.7.0 <0.9.0"`,
		)
	}

	candidates := matching(requested)
	if len(candidates) == 0 {
		logger.Warnw("Version range matches no known Solidity version",
			logger.FieldRange, versionRange)
	}

	resolved := make(Features, len(table))
	for _, feature := range table {
		value, err := resolveFeature(feature, candidates)
		if err != nil {
			return nil, err
		}
		resolved[feature.Name] = value

		logger.Debugw("Resolved feature",
			logger.FieldFeature, feature.Name,
			logger.FieldValue, value.String())
	}

	logger.Debugw("Resolved version features",
		logger.FieldRange, versionRange,
		logger.FieldCount, len(candidates))
	return resolved, nil
}

// matching returns every axis version satisfying the constraints
func matching(c *semver.Constraints) []*semver.Version {
	var matched []*semver.Version
	for _, v := range axis {
		if c.Check(v) {
			matched = append(matched, v)
		}
	}
	return matched
}

func resolveFeature(feature Feature, candidates []*semver.Version) (Value, error) {
	var seen []Value
	for _, step := range feature.Steps {
		c, err := semver.NewConstraint(step.Range)
		if err != nil {
			return Value{}, errors.AssertionFailedf("feature %s: invalid step range %q: %v", feature.Name, step.Range, err)
		}
		if !intersects(c, candidates) || contains(seen, step.Value) {
			continue
		}
		seen = append(seen, step.Value)
	}

	switch len(seen) {
	case 0:
		return Unset(), nil
	case 1:
		return seen[0], nil
	default:
		return Ambiguous(), nil
	}
}

func intersects(c *semver.Constraints, candidates []*semver.Version) bool {
	for _, v := range candidates {
		if c.Check(v) {
			return true
		}
	}
	return false
}

func contains(values []Value, v Value) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
