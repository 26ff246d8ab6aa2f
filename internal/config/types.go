// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/depconf/depconf/pkg/platform"

	"golang.org/x/exp/maps"
)

const (
	// CloneAuto detects a development clone from the root directory contents.
	CloneAuto CloneMode = "auto"
	// CloneYes forces the root to be treated as a development clone.
	CloneYes CloneMode = "yes"
	// CloneNo forces the root to be treated as a release tree.
	CloneNo CloneMode = "no"

	// RunnerVirtual interprets commands with the embedded mvdan/sh interpreter.
	RunnerVirtual RunnerMode = "virtual"
	// RunnerNative hands commands to the host shell.
	RunnerNative RunnerMode = "native"

	// DefaultBuildTimeout bounds a package compile, in seconds.
	DefaultBuildTimeout = 2500
	// DefaultInstallTimeout bounds moving an artifact into place, in seconds.
	DefaultInstallTimeout = 25
	// DefaultCleanTimeout bounds the final clean of a source tree, in seconds.
	DefaultCleanTimeout = 25
)

var (
	// ErrInvalidCloneMode is returned when a CloneMode value is not recognized.
	ErrInvalidCloneMode = errors.New("invalid clone mode")
	// ErrInvalidRunnerMode is returned when a RunnerMode value is not recognized.
	ErrInvalidRunnerMode = errors.New("invalid runner mode")
	// ErrInvalidTimeouts is returned when a timeout is not positive.
	ErrInvalidTimeouts = errors.New("invalid timeouts")
	// ErrReservedName is returned for a package or artifact name Windows cannot store.
	ErrReservedName = errors.New("reserved file name")
)

type (
	// CloneMode selects how the development-clone check is made.
	CloneMode string

	// InvalidCloneModeError is returned when a CloneMode value is not recognized.
	InvalidCloneModeError struct {
		Value CloneMode
	}

	// RunnerMode selects the process runner implementation.
	RunnerMode string

	// InvalidRunnerModeError is returned when a RunnerMode value is not recognized.
	InvalidRunnerModeError struct {
		Value RunnerMode
	}

	// PackageOptions is the typed set of flags recognized for one package.
	// Built-in packages only read Enabled, Required, Dir and Download; the remaining
	// fields describe packages declared entirely in configuration.
	PackageOptions struct {
		// Enabled opts the package into the configuration run.
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// Required makes anything short of an installed package fail the run.
		Required bool `json:"required" mapstructure:"required"`
		// Dir points at an already extracted source tree, bypassing lookup.
		Dir string `json:"dir" mapstructure:"dir"`
		// Artifact is the executable name the build produces.
		Artifact string `json:"artifact" mapstructure:"artifact"`
		// Language selects the compiler used for the build (C, Cxx, FC).
		Language string `json:"language" mapstructure:"language"`
		// Macro is the build variable that receives the artifact path.
		Macro string `json:"macro" mapstructure:"macro"`
		// Download lists the retrieval URLs, first successful wins.
		Download []string `json:"download" mapstructure:"download"`
	}

	// TimeoutConfig holds process timeouts in seconds.
	TimeoutConfig struct {
		Build   int `json:"build" mapstructure:"build"`
		Install int `json:"install" mapstructure:"install"`
		Clean   int `json:"clean" mapstructure:"clean"`
	}

	// OutputConfig names the files a configure run writes.
	// Empty paths resolve under <root>/<arch>/conf.
	OutputConfig struct {
		Variables string `json:"variables" mapstructure:"variables"`
		Record    string `json:"record" mapstructure:"record"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config is the depconf configuration.
	Config struct {
		// Root is the umbrella project directory. Empty means the working directory.
		Root string `json:"root" mapstructure:"root"`
		// Arch is the architecture tag naming the install tree under Root.
		Arch string `json:"arch" mapstructure:"arch"`
		// Batch requests a non-interactive run where optional packages soft-fail.
		Batch bool `json:"batch" mapstructure:"batch"`
		// Clone selects development-clone detection.
		Clone CloneMode `json:"clone" mapstructure:"clone"`
		// Runner selects the process runner.
		Runner RunnerMode `json:"runner" mapstructure:"runner"`
		// Compilers maps a language to its compiler command.
		Compilers map[string]string `json:"compilers" mapstructure:"compilers"`
		// Timeouts bounds external commands.
		Timeouts TimeoutConfig `json:"timeouts" mapstructure:"timeouts"`
		// Packages holds per-package options keyed by package name.
		Packages map[string]PackageOptions `json:"packages" mapstructure:"packages"`
		// Output names the generated files.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidCloneModeError) Error() string {
	return fmt.Sprintf("invalid clone mode %q (valid: auto, yes, no)", e.Value)
}

// Unwrap returns ErrInvalidCloneMode for errors.Is() compatibility.
func (e *InvalidCloneModeError) Unwrap() error { return ErrInvalidCloneMode }

// String returns the string representation of the CloneMode.
func (m CloneMode) String() string { return string(m) }

// IsValid returns whether the CloneMode is recognized, and the validation errors if not.
func (m CloneMode) IsValid() (bool, []error) {
	switch m {
	case CloneAuto, CloneYes, CloneNo:
		return true, nil
	default:
		return false, []error{&InvalidCloneModeError{Value: m}}
	}
}

// Error implements the error interface.
func (e *InvalidRunnerModeError) Error() string {
	return fmt.Sprintf("invalid runner %q (valid: virtual, native)", e.Value)
}

// Unwrap returns ErrInvalidRunnerMode for errors.Is() compatibility.
func (e *InvalidRunnerModeError) Unwrap() error { return ErrInvalidRunnerMode }

// String returns the string representation of the RunnerMode.
func (m RunnerMode) String() string { return string(m) }

// IsValid returns whether the RunnerMode is recognized, and the validation errors if not.
func (m RunnerMode) IsValid() (bool, []error) {
	switch m {
	case RunnerVirtual, RunnerNative:
		return true, nil
	default:
		return false, []error{&InvalidRunnerModeError{Value: m}}
	}
}

// Package returns the options recorded for name. Lookup is case-insensitive
// because viper lower-cases map keys.
func (c *Config) Package(name string) PackageOptions {
	if c == nil || c.Packages == nil {
		return PackageOptions{}
	}
	return c.Packages[strings.ToLower(name)]
}

// SetPackage stores options for name, replacing any previous entry.
func (c *Config) SetPackage(name string, opts PackageOptions) {
	if c.Packages == nil {
		c.Packages = make(map[string]PackageOptions)
	}
	c.Packages[strings.ToLower(name)] = opts
}

// Validate checks the values CUE cannot see after flags and environment
// overrides were applied.
func (c *Config) Validate() error {
	var errs []error
	if ok, verrs := c.Clone.IsValid(); !ok {
		errs = append(errs, verrs...)
	}
	if ok, verrs := c.Runner.IsValid(); !ok {
		errs = append(errs, verrs...)
	}
	if c.Timeouts.Build <= 0 || c.Timeouts.Install <= 0 || c.Timeouts.Clean <= 0 {
		errs = append(errs, fmt.Errorf("%w: build=%d install=%d clean=%d (all must be > 0)",
			ErrInvalidTimeouts, c.Timeouts.Build, c.Timeouts.Install, c.Timeouts.Clean))
	}
	names := maps.Keys(c.Packages)
	slices.Sort(names)
	for _, name := range names {
		artifact := c.Packages[name].Artifact
		if artifact == "" {
			artifact = name
		}
		if platform.IsWindowsReservedName(artifact) {
			errs = append(errs, fmt.Errorf("%w: package %q artifact %q", ErrReservedName, name, artifact))
		}
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Clone:     CloneAuto,
		Runner:    RunnerVirtual,
		Compilers: map[string]string{},
		Timeouts: TimeoutConfig{
			Build:   DefaultBuildTimeout,
			Install: DefaultInstallTimeout,
			Clean:   DefaultCleanTimeout,
		},
		Packages: map[string]PackageOptions{},
	}
}
