// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/depconf/depconf/internal/issue"
	"github.com/depconf/depconf/pkg/cueutil"
	"github.com/depconf/depconf/pkg/platform"

	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
)

const (
	// AppName is the application name.
	AppName = "depconf"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFile is the per-project config file looked up in the working directory.
	LocalConfigFile = "depconf.cue"
	// EnvPrefix prefixes environment variable overrides (DEPCONF_BATCH, ...).
	EnvPrefix = "DEPCONF"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the depconf configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions loads defaults, the first config file found, and environment
// overrides, in that order of increasing precedence.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("arch", defaults.Arch)
	v.SetDefault("batch", defaults.Batch)
	v.SetDefault("clone", string(defaults.Clone))
	v.SetDefault("runner", string(defaults.Runner))
	v.SetDefault("compilers", defaults.Compilers)
	v.SetDefault("timeouts.build", defaults.Timeouts.Build)
	v.SetDefault("timeouts.install", defaults.Timeouts.Install)
	v.SetDefault("timeouts.clean", defaults.Timeouts.Clean)
	v.SetDefault("packages", defaults.Packages)
	v.SetDefault("output.variables", defaults.Output.Variables)
	v.SetDefault("output.record", defaults.Output.Record)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithIssue(issue.ConfigLoadFailedId).
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Run 'depconf config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Packages == nil {
		cfg.Packages = map[string]PackageOptions{}
	}
	if cfg.Compilers == nil {
		cfg.Compilers = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithIssue(issue.ConfigLoadFailedId).
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check DEPCONF_* environment variables for typos").
			Wrap(err).
			BuildError()
	}

	return &cfg, path, nil
}

// resolveConfigPath picks the configuration file to load. An explicit path must
// exist; otherwise the config directory and then the working directory are tried,
// and "" means defaults only.
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithIssue(issue.ConfigLoadFailedId).
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'depconf config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}

	if p := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(p) {
		return p, nil
	}

	local := LocalConfigFile
	if opts.BaseDir != "" {
		local = filepath.Join(opts.BaseDir, LocalConfigFile)
	}
	if fileExists(local) {
		return local, nil
	}
	return "", nil
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	values, err := cueutil.DecodeMap(configSchema, data, "#Config", path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file if none exists and returns its path.
func CreateDefaultConfig() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, nil
}

// GenerateCUE renders cfg as a CUE document accepted by the #Config schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// depconf configuration\n\n")

	if cfg.Root != "" {
		fmt.Fprintf(&sb, "root: %q\n", cfg.Root)
	}
	if cfg.Arch != "" {
		fmt.Fprintf(&sb, "arch: %q\n", cfg.Arch)
	}
	fmt.Fprintf(&sb, "batch:  %v\n", cfg.Batch)
	fmt.Fprintf(&sb, "clone:  %q\n", cfg.Clone)
	fmt.Fprintf(&sb, "runner: %q\n", cfg.Runner)

	if len(cfg.Compilers) > 0 {
		sb.WriteString("\ncompilers: {\n")
		langs := maps.Keys(cfg.Compilers)
		slices.Sort(langs)
		for _, lang := range langs {
			fmt.Fprintf(&sb, "\t%q: %q\n", lang, cfg.Compilers[lang])
		}
		sb.WriteString("}\n")
	}

	sb.WriteString("\ntimeouts: {\n")
	fmt.Fprintf(&sb, "\tbuild:   %d\n", cfg.Timeouts.Build)
	fmt.Fprintf(&sb, "\tinstall: %d\n", cfg.Timeouts.Install)
	fmt.Fprintf(&sb, "\tclean:   %d\n", cfg.Timeouts.Clean)
	sb.WriteString("}\n")

	if len(cfg.Packages) > 0 {
		sb.WriteString("\npackages: {\n")
		names := maps.Keys(cfg.Packages)
		slices.Sort(names)
		for _, name := range names {
			writePackageCUE(&sb, name, cfg.Packages[name])
		}
		sb.WriteString("}\n")
	}

	if cfg.Output.Variables != "" || cfg.Output.Record != "" {
		sb.WriteString("\noutput: {\n")
		if cfg.Output.Variables != "" {
			fmt.Fprintf(&sb, "\tvariables: %q\n", cfg.Output.Variables)
		}
		if cfg.Output.Record != "" {
			fmt.Fprintf(&sb, "\trecord: %q\n", cfg.Output.Record)
		}
		sb.WriteString("}\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

func writePackageCUE(sb *strings.Builder, name string, p PackageOptions) {
	fmt.Fprintf(sb, "\t%q: {\n", name)
	fmt.Fprintf(sb, "\t\tenabled: %v\n", p.Enabled)
	if p.Required {
		sb.WriteString("\t\trequired: true\n")
	}
	if p.Dir != "" {
		fmt.Fprintf(sb, "\t\tdir: %q\n", p.Dir)
	}
	if p.Artifact != "" {
		fmt.Fprintf(sb, "\t\tartifact: %q\n", p.Artifact)
	}
	if p.Language != "" {
		fmt.Fprintf(sb, "\t\tlanguage: %q\n", p.Language)
	}
	if p.Macro != "" {
		fmt.Fprintf(sb, "\t\tmacro: %q\n", p.Macro)
	}
	if len(p.Download) > 0 {
		quoted := make([]string, len(p.Download))
		for i, u := range p.Download {
			quoted[i] = fmt.Sprintf("%q", u)
		}
		fmt.Fprintf(sb, "\t\tdownload: [%s]\n", strings.Join(quoted, ", "))
	}
	sb.WriteString("\t}\n")
}
