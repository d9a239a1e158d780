// Package timing owns the pulse-duration model shared by line-code encoders
// and decoders.
//
// Ownership boundary:
// - pulse and level primitives
// - tolerance matching of measured durations
// - sample sources and the tick-level classifier a decoder reads through
package timing
