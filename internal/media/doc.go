// Package media extracts short audio probes with an external slicing binary
// (ffmpeg by default).
//
// A probe is a duration-bounded mono 16 kHz PCM WAV slice taken from the
// start of a source file, written into a temp directory owned by the probe.
// Callers must release it with Cleanup on every path once detection is done.
package media
