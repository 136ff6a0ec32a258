package main

// Output defaults
const (
	defaultBitDepth = 24
	defaultTapsShow = 0 // print every tap
)

// Filter report
const (
	responsePoints  = 4096
	passbandEdgeDiv = 2 // passband edge is cutoff - transition/2
)

// Logging
const (
	logFormatText = "text"
	logFormatJSON = "json"
	logTimeLayout = "2006-01-02 15:04:05"
)

// Units
const (
	hzPerNyquist = 2.0
)
