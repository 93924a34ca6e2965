// Package language scores transcript text against per-language keyword sets
// and normalizes caller-supplied language codes to ISO 639-1.
package language
