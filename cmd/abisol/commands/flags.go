package commands

import (
	"github.com/spf13/pflag"

	"github.com/teranos/abisol/am"
)

// flagBindings maps command-line flag names to configuration keys
var flagBindings = map[string]string{
	"name":             "generate.name",
	"solidity-version": "generate.solidity_version",
	"license":          "generate.license",
	"shim-container":   "generate.shim_container",
	"strict":           "generate.strict",
	"prettify":         "format.prettify",
	"formatter":        "format.command",
	"log-json":         "log.json",
	"verbose":          "log.verbosity",
}

// BindFlags binds every known flag in flags to its configuration key so that
// explicitly set flags override config files and the environment. Call before
// the first am.Load.
func BindFlags(flags *pflag.FlagSet) error {
	v := am.GetViper()

	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagBindings[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}
