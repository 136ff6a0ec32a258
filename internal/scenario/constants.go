package scenario

// Reference workload
const (
	defaultSampleRate       = 400.0
	defaultSamples          = 5001
	defaultChannels         = 401
	defaultCarrierFrequency = 2.5
	defaultRippleDB         = 40.0
	defaultTransitionHz     = 5.0
	defaultCutoffHz         = 10.0
	defaultDecimation       = 1
)

const yamlIndent = 2
