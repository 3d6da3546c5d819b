// Package am loads abisol configuration ("am" as in "I am configured like this").
//
// Sources merge in precedence order, lowest first:
// built-in defaults, /etc/abisol/am.toml, ~/.abisol/am.toml, the nearest
// abisol.toml found walking up from the working directory, ABISOL_* env vars.
// Command-line flags bound through GetViper override all of them.
package am

// Config represents the abisol configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Format   FormatConfig   `mapstructure:"format" toml:"format" json:"format" yaml:"format"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// GenerateConfig holds the defaults for `abisol generate`
type GenerateConfig struct {
	Name            string `mapstructure:"name" toml:"name" json:"name" yaml:"name"`                                         // Interface name
	SolidityVersion string `mapstructure:"solidity_version" toml:"solidity_version" json:"solidity_version" yaml:"solidity_version"` // Semver range the output must compile under
	License         string `mapstructure:"license" toml:"license" json:"license" yaml:"license"`                             // SPDX identifier
	ShimContainer   string `mapstructure:"shim_container" toml:"shim_container" json:"shim_container" yaml:"shim_container"`   // Holder for container-less structs
	Strict          bool   `mapstructure:"strict" toml:"strict" json:"strict" yaml:"strict"`                                 // Validate the ABI with go-ethereum before generating
}

// FormatConfig configures prettification of the generated source
type FormatConfig struct {
	Prettify bool   `mapstructure:"prettify" toml:"prettify" json:"prettify" yaml:"prettify"`
	Command  string `mapstructure:"command" toml:"command" json:"command" yaml:"command"` // External formatter reading stdin, e.g. "forge fmt --raw -" (empty = built-in indenter)
}

// LogConfig configures diagnostics on stderr
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"` // 0 = warnings, 1 = info, 2+ = debug
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Config file names
const (
	UserConfigDir     = ".abisol"
	UserConfigFile    = "am.toml"
	ProjectConfigFile = "abisol.toml"
	SystemConfigPath  = "/etc/abisol/am.toml"
	EnvPrefix         = "ABISOL"
)
