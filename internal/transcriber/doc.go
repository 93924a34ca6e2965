// Package transcriber orchestrates a transcription run: validate the input
// file, route the language decision, perform the full transcription call, and
// assemble the provider document with its provenance metadata.
package transcriber
