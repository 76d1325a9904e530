// Package render formats dialogue collections for the terminal: the detail
// blocks printed by the editor's view command, go-pretty tables for wide
// listings, and true-colour swatches for speaker name colours.
package render
