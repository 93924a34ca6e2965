// Package routing decides which language hint, if any, accompanies the full
// transcription call.
//
// The router composes the slicer, the transcription client, and the keyword
// classifier into a best-effort ladder: a forced language bypasses everything;
// disabled routing defers to the remote API's own detection; otherwise a short
// probe (or the full file when slicing is unavailable or fails) is
// transcribed with the cheap detection model and classified. Detection-path
// failures degrade to an undetermined decision; they never abort the request.
package routing
