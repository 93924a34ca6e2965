// Package services defines shared utilities consumed by the transcription
// components and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers and stage
//     names for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent process exit codes.
//
// Use these helpers when wiring new components so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
