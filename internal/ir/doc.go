// Package ir connects line-code protocols to the outside world.
//
// Ownership boundary:
// - carrier and pulse sink collaborators (LED transmitter, recorder)
// - the protocol registry
// - send/receive entry points that log and record metrics per attempt
package ir
