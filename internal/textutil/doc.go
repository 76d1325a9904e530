// Package textutil provides text processing utilities for user-entered
// dialogue fields and filenames.
//
// The primary use cases are:
//   - Normalizing names and dialogue text to Unicode NFC before they are stored
//   - Sanitizing filenames and path segments for safe filesystem use
//   - Truncating long strings for single-line table cells
package textutil
