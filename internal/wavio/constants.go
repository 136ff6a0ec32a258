package wavio

// Sample format constants
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

// WAV format constants
const (
	wavFormatPCM   = 1
	maxWAVChannels = 65535 // fmt chunk channel count is a uint16
)
