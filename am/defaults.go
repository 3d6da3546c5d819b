package am

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/teranos/abisol/solidity"
	"github.com/teranos/abisol/solidity/declarations"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("generate.name", solidity.DefaultName)
	v.SetDefault("generate.solidity_version", solidity.DefaultSolidityVersion)
	v.SetDefault("generate.license", solidity.DefaultLicense)
	v.SetDefault("generate.shim_container", declarations.DefaultShimContainer)
	v.SetDefault("generate.strict", false)

	// Formatting defaults
	v.SetDefault("format.prettify", false)
	v.SetDefault("format.command", "")

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// BindEnvVars binds settings whose env names don't follow the ABISOL_SECTION_KEY scheme
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("format.command", "ABISOL_FORMATTER")
	v.BindEnv("generate.solidity_version", "ABISOL_SOLIDITY_VERSION", "ABISOL_GENERATE_SOLIDITY_VERSION")
}

// Default returns the configuration built from defaults alone
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Name:            solidity.DefaultName,
			SolidityVersion: solidity.DefaultSolidityVersion,
			License:         solidity.DefaultLicense,
			ShimContainer:   declarations.DefaultShimContainer,
		},
	}
}

// HasFormatter reports whether an external formatter command is configured
func (c *Config) HasFormatter() bool {
	return c.Format.Command != ""
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Generate: {Name: %s, SolidityVersion: %s}, Format: {Prettify: %t}, Log: {Verbosity: %d}}",
		c.Generate.Name, c.Generate.SolidityVersion, c.Format.Prettify, c.Log.Verbosity)
}
