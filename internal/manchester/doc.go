// Package manchester implements the IR Manchester line code.
//
// A bit occupies two ticks and is defined by the transition between them:
// space then mark is 1, mark then space is 0. Payloads are sent most
// significant bit first with no header, and each transmission is closed by
// an inter-message gap.
//
// Ownership boundary:
// - protocol constants
// - pulse sequence encoding and carrier/sink emission
// - symbol-pair decoding with strict and lenient compliance
// - unit/team field split of decoded values
package manchester
