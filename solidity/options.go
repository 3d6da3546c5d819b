package solidity

// Defaults used when an Options field is empty
const (
	DefaultName            = "MyInterface"
	DefaultSolidityVersion = ">=0.7.0 <0.9.0"
	DefaultLicense         = "UNLICENSED"
)

// Formatter rewrites generated source. It may fail; failures are swallowed
// and the unformatted source is returned instead.
type Formatter func(source string) (string, error)

// Options configure one generation run
type Options struct {
	// Name of the generated interface
	Name string
	// SolidityVersion is the semver range the output must compile under
	SolidityVersion string
	// License is the SPDX identifier written in the header
	License string
	// Prettify runs Formatter (or the built-in indenter when nil) on the output
	Prettify bool
	Formatter Formatter
	// ShimContainer names the interface holding container-less structs when
	// the range has no file-level structs
	ShimContainer string
}

// DefaultOptions returns options with every default filled in
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.SolidityVersion == "" {
		o.SolidityVersion = DefaultSolidityVersion
	}
	if o.License == "" {
		o.License = DefaultLicense
	}
	return o
}
