package features

// Name identifies a version-dependent syntax feature
type Name string

const (
	ReceiveKeyword         Name = "receive-keyword"
	FallbackKeyword        Name = "fallback-keyword"
	ArrayParameterLocation Name = "array-parameter-location"
	AbiEncoderV2           Name = "abiencoder-v2"
	GlobalStructs          Name = "global-structs"
	StructsInInterfaces    Name = "structs-in-interfaces"
	CustomErrors           Name = "custom-errors"
)

// Step assigns Value to every version matching Range. Steps of one feature
// must not overlap.
type Step struct {
	Range string
	Value Value
}

// Feature is a step function over the Solidity version axis
type Feature struct {
	Name  Name
	Steps []Step
}

// Minimum version ranges quoted in version-floor errors
const (
	CustomErrorsMinimum        = ">=0.8.4"
	StructsInInterfacesMinimum = ">=0.5.0"
)

// Table is the registry of Solidity syntax features
var Table = []Feature{
	{
		Name: ReceiveKeyword,
		Steps: []Step{
			{Range: ">=0.6.0", Value: Bool(true)},
			{Range: "<0.6.0", Value: Bool(false)},
		},
	},
	{
		Name: FallbackKeyword,
		Steps: []Step{
			{Range: ">=0.6.0", Value: Bool(true)},
			{Range: "<0.6.0", Value: Bool(false)},
		},
	},
	{
		// Reference-type parameters of external functions need a data location
		// from 0.5.0 on; before that no location keyword is allowed
		Name: ArrayParameterLocation,
		Steps: []Step{
			{Range: ">=0.5.0", Value: Token("calldata")},
			{Range: "<0.5.0", Value: Unset()},
		},
	},
	{
		Name: AbiEncoderV2,
		Steps: []Step{
			{Range: ">=0.8.0", Value: Token("default")},
			{Range: "<0.8.0", Value: Token("experimental")},
		},
	},
	{
		Name: GlobalStructs,
		Steps: []Step{
			{Range: ">=0.6.0", Value: Bool(true)},
			{Range: "<0.6.0", Value: Bool(false)},
		},
	},
	{
		Name: StructsInInterfaces,
		Steps: []Step{
			{Range: StructsInInterfacesMinimum, Value: Bool(true)},
			{Range: "<0.5.0", Value: Bool(false)},
		},
	},
	{
		Name: CustomErrors,
		Steps: []Step{
			{Range: CustomErrorsMinimum, Value: Bool(true)},
			{Range: "<0.8.4", Value: Bool(false)},
		},
	},
}
